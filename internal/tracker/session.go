package tracker

import (
	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
)

// Session remembers the last known persisted values per date, so repeated
// submissions in one sitting diff against the true latest state rather than
// stale pre-edit state. It lives for one interactive session, is never
// persisted, and resets on restart; the worst that follows from a restart is
// a spurious "all fields changed" diff that rewrites identical values.
type Session struct {
	baselines map[string]map[string]schema.Value
}

// NewSession returns an empty session; one per interactive sitting.
func NewSession() *Session {
	return &Session{baselines: map[string]map[string]schema.Value{}}
}

// BaselineFor returns the remembered baseline for a date, lazily initialized
// from the current record the first time the date is touched.
func (s *Session) BaselineFor(date string, current store.Record) map[string]schema.Value {
	if b, ok := s.baselines[date]; ok {
		return cloneValues(b)
	}
	b := cloneValues(current.Values)
	s.baselines[date] = b
	return cloneValues(b)
}

// Update replaces the remembered baseline for a date. Called exactly once
// per successful persist.
func (s *Session) Update(date string, values map[string]schema.Value) {
	s.baselines[date] = cloneValues(values)
}

func cloneValues(in map[string]schema.Value) map[string]schema.Value {
	out := make(map[string]schema.Value, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
