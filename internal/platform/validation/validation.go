// Package validation runs table-driven field rules against decoded JSON input
// and reports every violation in a single 400 error.
package validation

import (
	"strings"

	"health_backend/internal/platform/apperror"
)

// Check reports whether a decoded JSON value satisfies a rule.
// Values come from a decoder with UseNumber enabled, so numbers arrive as json.Number.
type Check func(value any) bool

// Rule pairs a predicate with the message reported when it fails.
type Rule struct {
	Check   Check
	Message string
}

// Field lists the rules for one input key. Optional fields that are absent or
// null are skipped; required ones run every rule against the missing value.
type Field struct {
	Name     string
	Required bool
	Rules    []Rule
}

// Schema is an ordered rule table. Order decides the order of messages.
type Schema []Field

// Names returns the input keys covered by the schema.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// Validate checks every field. Failed messages of one field are joined with
// ", " and the per-field groups with "; ".
func (s Schema) Validate(input map[string]any) error {
	var groups []string
	for _, f := range s {
		value, present := input[f.Name]
		if (!present || value == nil) && !f.Required {
			continue
		}

		var failed []string
		for _, r := range f.Rules {
			if !r.Check(value) {
				failed = append(failed, r.Message)
			}
		}
		if len(failed) > 0 {
			groups = append(groups, strings.Join(failed, ", "))
		}
	}

	if len(groups) == 0 {
		return nil
	}
	return apperror.BadRequest(strings.Join(groups, "; "))
}
