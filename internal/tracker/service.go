package tracker

import (
	"log/slog"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
)

// Service ties the store, the schema and the session baseline together and
// exposes the read/submit contract the UI layers call.
type Service struct {
	store   *store.Store
	session *Session
	logger  *slog.Logger
}

func NewService(st *store.Store) *Service {
	return &Service{
		store:   st,
		session: NewSession(),
		logger:  slog.Default(),
	}
}

func (s *Service) Store() *store.Store { return s.store }

func (s *Service) Schema() schema.Schema { return s.store.Schema() }

// Table loads a snapshot for display. A corrupt backing file degrades to an
// empty table with a warning instead of failing the caller; submissions still
// see the real error through Submit.
func (s *Service) Table() *store.Table {
	t, err := s.store.Load()
	if err != nil {
		s.logger.Warn("falling back to empty table", "error", err)
		return store.NewTable(s.store.Schema())
	}
	return t
}

// Record returns the stored record for a date (all unset when absent) and
// whether the date exists. The date is canonicalized first.
func (s *Service) Record(date string) (store.Record, bool, error) {
	canon, err := store.NormalizeDate(date)
	if err != nil {
		return store.Record{}, false, err
	}
	t := s.Table()
	return t.Get(canon), t.Exists(canon), nil
}

// Recent returns the n most recent day records, newest first.
func (s *Service) Recent(n int) []store.Record {
	return s.Table().Recent(n)
}

// Export returns the persisted table verbatim for download.
func (s *Service) Export() ([]byte, error) {
	return s.store.ExportBytes()
}
