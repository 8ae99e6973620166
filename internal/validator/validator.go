// Package validator collects field-level validation failures for request
// bodies, query strings and configuration, keyed by field name.
package validator

import "slices"

// Validator maps field names to the first failure recorded for each.
// A Validator with an empty Errors map is valid.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no failures have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already failed, so the
// first failure for a field is the one reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records message for key when ok is false:
//
//	v.Check(port > 0, "port", "must be greater than zero")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// In reports whether value is one of list.
func In(value string, list ...string) bool {
	return slices.Contains(list, value)
}
