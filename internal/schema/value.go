package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a single field observation. The zero Value is unset, which means
// "no observation recorded" and is distinct from an explicit zero.
type Value struct {
	set  bool
	num  int
	text string
}

// Number wraps an integer observation (duration minutes or a scale rating).
func Number(n int) Value {
	return Value{set: true, num: n}
}

// Level wraps a tristate observation.
func Level(s string) Value {
	return Value{set: true, text: s}
}

// Unset is the absent observation.
func Unset() Value {
	return Value{}
}

func (v Value) IsSet() bool  { return v.set }
func (v Value) Int() int     { return v.num }
func (v Value) Text() string { return v.text }

// String renders the value for messages and display. Unset renders as "".
func (v Value) String() string {
	if !v.set {
		return ""
	}
	if v.text != "" {
		return v.text
	}
	return strconv.Itoa(v.num)
}

// Parse converts a raw table cell into a Value. Empty cells are unset.
// Numeric cells tolerate a trailing ".0" because prior exports stored whole
// minutes as floats whenever a column also held blanks; a cell with a real
// fractional part is an error so the loader can surface it instead of
// silently truncating.
func (f Field) Parse(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return Unset(), nil
	}
	if f.Kind == KindTristate {
		return Level(strings.ToLower(raw)), nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return Number(n), nil
	}
	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil || fv != math.Trunc(fv) {
		return Unset(), fmt.Errorf("field %s: cannot parse %q as a whole number", f.Name, raw)
	}
	return Number(int(fv)), nil
}

// Format renders a Value as a table cell. Unset values serialize as empty.
func (f Field) Format(v Value) string {
	if !v.IsSet() {
		return ""
	}
	if f.Kind == KindTristate {
		return v.Text()
	}
	return strconv.Itoa(v.Int())
}
