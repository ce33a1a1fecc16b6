package model

import (
	"regexp"

	"rentier/internal/errors"
)

// rule is one field-level invariant. Rules run in declaration order and the
// first failure aborts construction, so callers never observe a half-built
// entity.
type rule struct {
	field string
	name  string
	ok    func() bool
}

func runRules(rules []rule) error {
	for _, r := range rules {
		if !r.ok() {
			return &errors.ValidationError{Field: r.field, Rule: r.name}
		}
	}
	return nil
}

// Simple local@domain shape. Anything stricter belongs to the mail system.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
