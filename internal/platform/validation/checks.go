package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DatePattern matches a bare YYYY-MM-DD value.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ISO 8601 layouts accepted by IsISO8601.
var iso8601Layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func tag(value any, t string) bool {
	s, ok := asString(value)
	if !ok {
		return false
	}
	return validate.Var(s, t) == nil
}

// IsString accepts any JSON string.
func IsString(value any) bool {
	_, ok := asString(value)
	return ok
}

// Length accepts strings whose rune count lies in [min, max].
func Length(min, max int) Check {
	t := fmt.Sprintf("min=%d,max=%d", min, max)
	return func(value any) bool {
		return tag(value, t)
	}
}

// Matches accepts strings matching re.
func Matches(re *regexp.Regexp) Check {
	return func(value any) bool {
		s, ok := asString(value)
		return ok && re.MatchString(s)
	}
}

// IsISO8601 accepts strings holding a real ISO 8601 calendar date or timestamp.
func IsISO8601(value any) bool {
	s, ok := asString(value)
	if !ok {
		return false
	}
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsURL accepts absolute URLs.
func IsURL(value any) bool {
	return tag(value, "url")
}

// IsEmail accepts syntactically valid email addresses.
func IsEmail(value any) bool {
	return tag(value, "email")
}

// OneOf accepts exactly one of the given strings, case-sensitive.
func OneOf(values ...string) Check {
	t := "oneof=" + strings.Join(values, " ")
	return func(value any) bool {
		return tag(value, t)
	}
}

// IsNumber accepts finite JSON numbers.
func IsNumber(value any) bool {
	_, ok := Float(value)
	return ok
}

// IsInteger accepts JSON numbers without a fractional part.
func IsInteger(value any) bool {
	_, ok := Int64(value)
	return ok
}

// Float converts a decoded JSON number.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case float64:
		return v, !math.IsInf(v, 0) && !math.IsNaN(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int64 converts a decoded JSON number that holds an integer.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func Int64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, ok := Float(v)
		if !ok || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
