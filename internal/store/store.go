package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
)

// FileName is the table file inside the data directory.
const FileName = "Tracker.csv"

// DefaultDataDir returns the default location for the tracker table.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".accountabillabuddy"), nil
}

// Store owns the on-disk table: it loads, normalizes and persists rows, and
// keeps a short-lived read cache consistent with the file after every write.
// Single writer, single process.
type Store struct {
	path   string
	schema schema.Schema
	cache  *readCache
	logger *slog.Logger

	// rename swaps the temp file into place. Tests override it to simulate
	// a full disk.
	rename func(oldpath, newpath string) error
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the cache clock. Tests use this to step through the
// TTL without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.cache.now = now }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store over the table file in dir. The file does not need to
// exist yet; a missing file loads as an empty table.
func New(dir string, sch schema.Schema, cacheTTL time.Duration, opts ...Option) *Store {
	s := &Store{
		path:   filepath.Join(dir, FileName),
		schema: sch,
		cache:  newReadCache(cacheTTL, nil),
		logger: slog.Default(),
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Schema returns the store's column schema.
func (s *Store) Schema() schema.Schema { return s.schema }

// Load returns a snapshot of the persisted table, served from the read cache
// when fresh. A missing backing file is not an error: the result is an empty
// table with the schema's columns. An unreadable or corrupt file fails with
// a StorageReadError; callers should fall back to an empty table.
func (s *Store) Load() (*Table, error) {
	return s.cache.getOrLoad(s.read)
}

// Persist atomically rewrites the backing file with the full table contents
// and invalidates the read cache. On failure the previous persisted state is
// left untouched: the table is written to a temp file in the same directory
// and renamed into place.
func (s *Store) Persist(t *Table) error {
	data, err := encodeTable(t)
	if err != nil {
		return &StorageWriteError{Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageWriteError{Path: s.path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".tracker-*.csv")
	if err != nil {
		return &StorageWriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &StorageWriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &StorageWriteError{Path: s.path, Err: err}
	}
	if err := s.rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return &StorageWriteError{Path: s.path, Err: err}
	}

	s.cache.invalidate()
	s.logger.Debug("table persisted", "path", s.path, "rows", len(t.Records))
	return nil
}

// ExportBytes returns the persisted table verbatim, byte for byte, for
// download. When nothing has been persisted yet it returns the encoding of
// an empty table (header row only).
func (s *Store) ExportBytes() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return encodeTable(NewTable(s.schema))
	}
	if err != nil {
		return nil, &StorageReadError{Path: s.path, Err: err}
	}
	return data, nil
}

// Invalidate drops the read cache so the next Load hits the file. Exposed
// for callers that know another writer touched the file.
func (s *Store) Invalidate() {
	s.cache.invalidate()
}

func (s *Store) read() (*Table, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewTable(s.schema), nil
	}
	if err != nil {
		return nil, &StorageReadError{Path: s.path, Err: err}
	}
	t, err := decodeTable(data, s.schema, s.logger)
	if err != nil {
		return nil, &StorageReadError{Path: s.path, Err: err}
	}
	return t, nil
}
