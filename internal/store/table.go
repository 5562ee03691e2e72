package store

import (
	"sort"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
)

// Record is one day's row. Values holds exactly one entry per schema field
// that has an observation; fields without one are unset, never zero.
type Record struct {
	Date   string
	Values map[string]schema.Value
}

// Value returns the observation for a field, or unset when absent.
func (r Record) Value(name string) schema.Value {
	if v, ok := r.Values[name]; ok {
		return v
	}
	return schema.Unset()
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	vals := make(map[string]schema.Value, len(r.Values))
	for k, v := range r.Values {
		vals[k] = v
	}
	return Record{Date: r.Date, Values: vals}
}

// Table is the full set of day records. Date is the sole identity; row order
// is insertion order and carries no meaning. Tables handed out by the store
// are snapshots, not live references.
type Table struct {
	Schema  schema.Schema
	Records []Record
}

// NewTable returns an empty table over the given schema.
func NewTable(s schema.Schema) *Table {
	return &Table{Schema: s}
}

func (t *Table) index(date string) int {
	for i := range t.Records {
		if t.Records[i].Date == date {
			return i
		}
	}
	return -1
}

// Exists reports whether a record for the canonical date is present.
func (t *Table) Exists(date string) bool {
	return t.index(date) >= 0
}

// Get returns the record for a date. Absent dates yield a record with every
// field unset; "never visited" is not the same as "explicitly zeroed", so
// defaults are not substituted here.
func (t *Table) Get(date string) Record {
	if i := t.index(date); i >= 0 {
		return t.Records[i].Clone()
	}
	return Record{Date: date, Values: map[string]schema.Value{}}
}

// Put inserts the record, replacing any existing row with the same date.
func (t *Table) Put(rec Record) {
	if i := t.index(rec.Date); i >= 0 {
		t.Records[i] = rec
		return
	}
	t.Records = append(t.Records, rec)
}

// Recent returns up to n records sorted by date descending.
func (t *Table) Recent(n int) []Record {
	out := make([]Record, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Clone()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Clone deep-copies the table. Used by the read cache so callers never hold
// a live reference into cached state.
func (t *Table) Clone() *Table {
	out := &Table{Schema: t.Schema, Records: make([]Record, len(t.Records))}
	for i, r := range t.Records {
		out.Records[i] = r.Clone()
	}
	return out
}
