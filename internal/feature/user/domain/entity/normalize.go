package entity

import (
	"strings"
	"unicode"

	"health_backend/internal/platform/apperror"
)

const (
	// MsgNameHasDigit is reported when a name contains a digit.
	MsgNameHasDigit = "name_string_validation"
	// MsgEmailHasDigit is reported when an email contains a digit.
	MsgEmailHasDigit = "email_format_validation"
)

const digits = "0123456789"

// NormalizeName rejects names containing digits and title-cases the rest:
// the whole value is lower-cased, then the first letter of every
// space-separated token is upper-cased. Only ' ' separates tokens.
func NormalizeName(name string) (string, error) {
	if strings.ContainsAny(name, digits) {
		return "", apperror.BadRequest(MsgNameHasDigit)
	}

	tokens := strings.Split(strings.ToLower(name), " ")
	for i, tok := range tokens {
		runes := []rune(tok)
		if len(runes) == 0 {
			continue
		}
		runes[0] = unicode.ToUpper(runes[0])
		tokens[i] = string(runes)
	}
	return strings.Join(tokens, " "), nil
}

// NormalizeEmail rejects emails containing digits and lower-cases the rest.
func NormalizeEmail(email string) (string, error) {
	if strings.ContainsAny(email, digits) {
		return "", apperror.BadRequest(MsgEmailHasDigit)
	}
	return strings.ToLower(email), nil
}
