package validator

import (
	"fmt"
	"unicode/utf8"
)

// Kind is the value type a Constraint applies to.
type Kind int

const (
	String Kind = iota
	Int
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Bool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Constraint declares the rules a single field must satisfy.
//
// MinLength and MaxLength apply to String fields and count runes; a zero
// MaxLength means the length is unbounded. Min and Max are inclusive bounds
// for Int fields; nil means no bound on that side.
type Constraint struct {
	Field     string
	Kind      Kind
	Optional  bool
	MinLength int
	MaxLength int
	Min       *int64
	Max       *int64
}

// Bound returns a pointer to n for use as a Constraint Min or Max.
func Bound(n int64) *int64 {
	return &n
}

// CheckConstraints runs every constraint in cs against the matching entry
// in values and records each violation. Values may be plain or pointer
// types; a missing key or nil pointer counts as "not provided".
func (v *Validator) CheckConstraints(cs []Constraint, values map[string]any) {
	for _, c := range cs {
		v.CheckConstraint(c, values[c.Field])
	}
}

// CheckConstraint checks a single value against c.
func (v *Validator) CheckConstraint(c Constraint, value any) {
	value, present := deref(value)
	if !present {
		v.Check(c.Optional, c.Field, "must be provided")
		return
	}

	switch c.Kind {
	case String:
		s, ok := value.(string)
		if !ok {
			v.AddError(c.Field, "must be a "+c.Kind.String())
			return
		}
		n := utf8.RuneCountInString(s)
		if c.MinLength > 0 && n < c.MinLength {
			if n == 0 {
				v.AddError(c.Field, "must not be empty")
				return
			}
			v.AddError(c.Field, fmt.Sprintf("must be at least %d characters long", c.MinLength))
			return
		}
		if c.MaxLength > 0 && n > c.MaxLength {
			v.AddError(c.Field, fmt.Sprintf("must not be more than %d characters long", c.MaxLength))
		}
	case Int:
		n, ok := toInt64(value)
		if !ok {
			v.AddError(c.Field, "must be an "+c.Kind.String())
			return
		}
		switch {
		case c.Min != nil && c.Max != nil && (n < *c.Min || n > *c.Max):
			v.AddError(c.Field, fmt.Sprintf("must be between %d and %d", *c.Min, *c.Max))
		case c.Min != nil && n < *c.Min:
			v.AddError(c.Field, fmt.Sprintf("must be greater than or equal to %d", *c.Min))
		case c.Max != nil && n > *c.Max:
			v.AddError(c.Field, fmt.Sprintf("must be less than or equal to %d", *c.Max))
		}
	case Bool:
		if _, ok := value.(bool); !ok {
			v.AddError(c.Field, "must be a "+c.Kind.String())
		}
	default:
		v.AddError(c.Field, "has an unsupported type")
	}
}

// deref unwraps the pointer types used by input structs. The boolean is
// false when the value was absent.
func deref(value any) (any, bool) {
	switch p := value.(type) {
	case nil:
		return nil, false
	case *string:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *int:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *int64:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *bool:
		if p == nil {
			return nil, false
		}
		return *p, true
	}
	return value, true
}

func toInt64(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
