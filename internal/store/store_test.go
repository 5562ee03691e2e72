package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return New(t.TempDir(), schema.Default(), 10*time.Second, opts...)
}

func sampleRecord(date string) Record {
	return Record{
		Date: date,
		Values: map[string]schema.Value{
			"Meditation": schema.Number(10),
			"Exercise":   schema.Number(0),
			"THC":        schema.Level("good"),
			"Diet":       schema.Level("neutral"),
			"Vibe":       schema.Number(7),
		},
	}
}

func TestLoadMissingFileIsEmptyTable(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, table.Records)
	require.Equal(t, schema.Default().Columns(), table.Schema.Columns())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	// Fresh store over the same file: no warm cache involved.
	s2 := New(filepath.Dir(s.Path()), schema.Default(), 0)
	got, err := s2.Load()
	require.NoError(t, err)
	require.True(t, got.Exists("2024-01-01"))

	rec := got.Get("2024-01-01")
	require.Equal(t, 10, rec.Value("Meditation").Int())
	require.Equal(t, "good", rec.Value("THC").Text())
	require.Equal(t, 7, rec.Value("Vibe").Int())
	// An explicit zero survives as a set zero, not as unset.
	require.True(t, rec.Value("Exercise").IsSet())
	require.Equal(t, 0, rec.Value("Exercise").Int())
	// A field never written stays unset.
	require.False(t, rec.Value("Screen").IsSet())
}

func TestPersistOfLoadedTableIsByteStable(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	table.Put(Record{Date: "2024-01-02", Values: map[string]schema.Value{
		"Exercise": schema.Number(45),
		"Diet":     schema.Level("bad"),
	}})
	require.NoError(t, s.Persist(table))

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Persist(loaded))

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, FileName, entries[0].Name())
}

func TestFailedPersistLeavesPriorStateIntact(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	s.rename = func(oldpath, newpath string) error {
		return errors.New("no space left on device")
	}
	table.Put(sampleRecord("2024-01-02"))
	err = s.Persist(table)
	require.Error(t, err)
	var we *StorageWriteError
	require.ErrorAs(t, err, &we)

	// The previous persisted state is byte-identical and no temp file is
	// left behind.
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, FileName, entries[0].Name())

	// A reload still sees the prior state, so the caller can retry.
	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	require.True(t, got.Exists("2024-01-01"))
}

func TestPersistFailsWhenDataDirIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocked := filepath.Join(parent, "data")
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0o644))

	s := New(blocked, schema.Default(), 0)
	table := NewTable(schema.Default())
	table.Put(sampleRecord("2024-01-01"))

	err := s.Persist(table)
	require.Error(t, err)
	var we *StorageWriteError
	require.ErrorAs(t, err, &we)
}

func TestCorruptFileIsReadError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("Date,Vibe\n\"unterminated\n"), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	require.True(t, IsReadError(err))
}

func TestBadRowsAreQuarantinedNotFatal(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	content := "Date,Meditation,Vibe\n" +
		"2024-01-01,10,7\n" +
		"not-a-date,5,3\n" +
		"2024-01-01,99,9\n" + // duplicate date
		"2024-01-02,20,8\n" +
		"2024-01-03,7.5,6\n" // fractional cell
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	table, err := s.Load()
	require.NoError(t, err)
	require.Len(t, table.Records, 3)
	require.Equal(t, 10, table.Get("2024-01-01").Value("Meditation").Int())
	require.Equal(t, 8, table.Get("2024-01-02").Value("Vibe").Int())

	// A fractional cell loads as unset; the rest of its row survives.
	rec := table.Get("2024-01-03")
	require.False(t, rec.Value("Meditation").IsSet())
	require.Equal(t, 6, rec.Value("Vibe").Int())
}

func TestCacheServesStaleUntilTTLOrWrite(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := newTestStore(t, WithClock(clock))

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	first, err := s.Load()
	require.NoError(t, err)
	require.Len(t, first.Records, 1)

	// Another writer replaces the file behind the cache's back.
	content := "Date,Meditation,Vibe\n2024-02-01,1,2\n2024-02-02,3,4\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	// Within the TTL the cached snapshot is still served.
	stale, err := s.Load()
	require.NoError(t, err)
	require.Len(t, stale.Records, 1)

	// Past the TTL the file is re-read.
	now = now.Add(11 * time.Second)
	fresh, err := s.Load()
	require.NoError(t, err)
	require.Len(t, fresh.Records, 2)

	// A successful write invalidates immediately, no TTL wait.
	fresh.Put(sampleRecord("2024-02-03"))
	require.NoError(t, s.Persist(fresh))
	after, err := s.Load()
	require.NoError(t, err)
	require.Len(t, after.Records, 3)
}

func TestCachedTableIsASnapshot(t *testing.T) {
	s := newTestStore(t)

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	a, err := s.Load()
	require.NoError(t, err)
	a.Get("2024-01-01") // copies
	a.Records[0].Values["Vibe"] = schema.Number(1)

	b, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 7, b.Get("2024-01-01").Value("Vibe").Int())
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-01":           "2024-01-01",
		"2024/03/15":           "2024-03-15",
		"03/15/2024":           "2024-03-15",
		" 2024-01-01 ":         "2024-01-01",
		"2024-01-01 13:45:00":  "2024-01-01",
		"2024-01-01T13:45:00Z": "2024-01-01",
	}
	for in, want := range cases {
		got, err := NormalizeDate(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "yesterday", "2024-13-40", "20240101x"} {
		_, err := NormalizeDate(in)
		require.Error(t, err, in)
		require.True(t, IsDateFormatError(err), in)
	}
}

func TestExportBytesIsVerbatim(t *testing.T) {
	s := newTestStore(t)

	// Nothing persisted yet: header-only table.
	data, err := s.ExportBytes()
	require.NoError(t, err)
	require.Equal(t, "Date,"+joinColumns()+"\n", string(data))

	table, err := s.Load()
	require.NoError(t, err)
	table.Put(sampleRecord("2024-01-01"))
	require.NoError(t, s.Persist(table))

	onDisk, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	exported, err := s.ExportBytes()
	require.NoError(t, err)
	require.Equal(t, onDisk, exported)
}

func joinColumns() string {
	out := ""
	for i, c := range schema.Default().Columns() {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}

func TestEncodeTableGolden(t *testing.T) {
	table := NewTable(schema.Default())
	table.Put(sampleRecord("2024-01-01"))
	table.Put(Record{Date: "2024-01-02", Values: map[string]schema.Value{
		"Exercise":   schema.Number(45),
		"Madi":       schema.Number(120),
		"THC":        schema.Level("bad"),
		"Screen":     schema.Number(30),
		"Productive": schema.Number(60),
		"Vibe":       schema.Number(9),
	}})

	data, err := encodeTable(table)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "tracker_table", data)
}
