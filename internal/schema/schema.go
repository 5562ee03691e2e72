package schema

import (
	"fmt"
	"strings"
)

type Kind string

const (
	// KindDuration is a non-negative integer number of minutes.
	KindDuration Kind = "duration"
	// KindTristate is one of the ordered levels bad < neutral < good.
	KindTristate Kind = "tristate"
	// KindScale is an integer bounded to [Min, Max].
	KindScale Kind = "scale"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDuration, KindTristate, KindScale:
		return true
	default:
		return false
	}
}

// TristateLevels is the ordered value domain for tristate fields.
// The first level is the default.
var TristateLevels = []string{"bad", "neutral", "good"}

// Field is one tracked metric. Min/Max apply to scale fields only,
// Unit to duration fields only.
type Field struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	Unit string `yaml:"unit,omitempty"`
	Min  int    `yaml:"min,omitempty"`
	Max  int    `yaml:"max,omitempty"`
}

// Default returns the canonical default used when a value is missing:
// 0 minutes, the first tristate level, or the scale minimum.
func (f Field) Default() Value {
	switch f.Kind {
	case KindTristate:
		return Level(TristateLevels[0])
	case KindScale:
		return Number(f.Min)
	default:
		return Number(0)
	}
}

// Resolve substitutes the field default for an unset value. Comparisons and
// display both go through Resolve so "never filled in" and "explicitly set to
// the default" compare equal once a record exists.
func (f Field) Resolve(v Value) Value {
	if !v.IsSet() {
		return f.Default()
	}
	return v
}

// Equal compares two values as the field's native type after resolving
// defaults. Numeric kinds compare numerically, tristate by level.
func (f Field) Equal(a, b Value) bool {
	ra, rb := f.Resolve(a), f.Resolve(b)
	if f.Kind == KindTristate {
		return ra.Text() == rb.Text()
	}
	return ra.Int() == rb.Int()
}

// Validate checks domain membership for a set value. Unset values are always
// valid; they mean "no observation", not zero.
func (f Field) Validate(v Value) error {
	if !v.IsSet() {
		return nil
	}
	switch f.Kind {
	case KindDuration:
		if v.Int() < 0 {
			return &ValidationError{Field: f.Name, Value: v.String(), Reason: "minutes must be >= 0"}
		}
	case KindTristate:
		for _, lvl := range TristateLevels {
			if v.Text() == lvl {
				return nil
			}
		}
		return &ValidationError{
			Field:  f.Name,
			Value:  v.String(),
			Reason: fmt.Sprintf("must be one of %s", strings.Join(TristateLevels, "|")),
		}
	case KindScale:
		if v.Int() < f.Min || v.Int() > f.Max {
			return &ValidationError{
				Field:  f.Name,
				Value:  v.String(),
				Reason: fmt.Sprintf("must be in [%d, %d]", f.Min, f.Max),
			}
		}
	default:
		return &ValidationError{Field: f.Name, Value: v.String(), Reason: fmt.Sprintf("unknown kind %q", f.Kind)}
	}
	return nil
}

// Schema is the fixed ordered list of tracked fields. It never changes during
// the life of a process.
type Schema []Field

// Default is the built-in tracker schema.
func Default() Schema {
	return Schema{
		{Name: "Meditation", Kind: KindDuration, Unit: "minutes"},
		{Name: "Exercise", Kind: KindDuration, Unit: "minutes"},
		{Name: "Frankie", Kind: KindDuration, Unit: "minutes"},
		{Name: "Harrison", Kind: KindDuration, Unit: "minutes"},
		{Name: "Madi", Kind: KindDuration, Unit: "minutes"},
		{Name: "THC", Kind: KindTristate},
		{Name: "Diet", Kind: KindTristate},
		{Name: "Screen", Kind: KindDuration, Unit: "minutes"},
		{Name: "Productive", Kind: KindDuration, Unit: "minutes"},
		{Name: "Vibe", Kind: KindScale, Min: 1, Max: 10},
	}
}

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the field names in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s))
	for i, f := range s {
		cols[i] = f.Name
	}
	return cols
}

// Validate checks every submitted value against its field's domain. Values
// for names outside the schema are rejected; the offending field is named
// in the error.
func (s Schema) Validate(values map[string]Value) error {
	for name, v := range values {
		f, ok := s.Field(name)
		if !ok {
			return &ValidationError{Field: name, Value: v.String(), Reason: "not in schema"}
		}
		if err := f.Validate(v); err != nil {
			return err
		}
	}
	return nil
}
