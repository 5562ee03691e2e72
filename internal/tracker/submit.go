package tracker

import (
	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
)

// Submit reconciles a day's submission against the session baseline and
// persists the minimal update.
//
// When no record exists for the date, every submitted field is written
// verbatim as a new row and reported as changed. When a record exists, each
// field's submitted value is compared against the effective baseline (the
// remembered value with the field default substituted for unset) as its
// native type, and only fields that actually differ are rewritten; an unset
// submission never counts as a change. An empty change set writes nothing
// and leaves the read cache warm.
//
// After any successful persist the session baseline for the date is replaced
// with the freshly persisted values.
func (s *Service) Submit(date string, submitted map[string]schema.Value) (*Outcome, error) {
	sch := s.store.Schema()
	if err := sch.Validate(submitted); err != nil {
		return nil, err
	}
	canon, err := store.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	table, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	exists := table.Exists(canon)
	rec := table.Get(canon)
	baseline := s.session.BaselineFor(canon, rec)

	var changed []string
	if exists {
		for _, f := range sch {
			v, ok := submitted[f.Name]
			if !ok || !v.IsSet() {
				continue
			}
			if !f.Equal(v, f.Resolve(baseline[f.Name])) {
				rec.Values[f.Name] = v
				changed = append(changed, f.Name)
			}
		}
	} else {
		for _, f := range sch {
			v, ok := submitted[f.Name]
			if !ok || !v.IsSet() {
				continue
			}
			rec.Values[f.Name] = v
			changed = append(changed, f.Name)
		}
	}
	if len(changed) == 0 {
		return &Outcome{Kind: OutcomeNoChange, Date: canon}, nil
	}

	table.Put(rec)
	if err := s.store.Persist(table); err != nil {
		return nil, err
	}
	s.session.Update(canon, rec.Values)

	kind := OutcomeUpdated
	if !exists {
		kind = OutcomeCreated
	}
	s.logger.Info("submission persisted", "date", canon, "outcome", string(kind), "changed", len(changed))
	return &Outcome{Kind: kind, Date: canon, Changed: changed}, nil
}
