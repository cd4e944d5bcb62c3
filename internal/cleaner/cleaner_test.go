package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/spotify-eda/internal/loader"
	"github.com/ademuri/spotify-eda/internal/table"
)

func rawArtists() *table.Table {
	return table.New(
		[]string{"ID", "Followers", "Genres", "Name", "Popularity"},
		[][]any{
			{"a1", int64(1200), "['Pop', 'Rock']", "Alpha", int64(55)},
			{"a2", nil, nil, "Beta", nil},
			{"a3", int64(-4), "jazz, blues", nil, 12.7},
			{"a1", int64(9), "['ignored']", "Dup", int64(1)},
			{nil, int64(1), "pop", "NoID1", int64(1)},
			{nil, int64(2), "pop", "NoID2", int64(2)},
		},
	)
}

func rawTracks() *table.Table {
	return table.New(
		[]string{"id", "name", "popularity", "release_date", "Duration Ms"},
		[][]any{
			{"t1", "One", int64(50), "2020-01-02", 1.5},
			{"t2", nil, nil, "2020-06", nil},
			{"t3", "Three", int64(90), int64(2021), 2.5},
			{"t4", "Four", int64(60), "not a date", 3.5},
			{"t1", "Dup", int64(1), "2019", 9.0},
		},
	)
}

func TestNormalizeColumnName(t *testing.T) {
	assert.Equal(t, "duration_ms", NormalizeColumnName("Duration Ms"))
	assert.Equal(t, "track_id", NormalizeColumnName("track_id"))
}

func TestCleanArtists(t *testing.T) {
	got := CleanArtists(rawArtists())

	assert.Equal(t, []string{"id", "followers", "genres", "name", "popularity"}, got.Columns())
	require.Equal(t, 4, got.Len())

	assert.Equal(t, "pop, rock", got.Value(0, "genres"))
	assert.Equal(t, "unknown", got.Value(1, "genres"))
	assert.Equal(t, "jazz, blues", got.Value(2, "genres"))
	assert.Equal(t, "unknown", CleanArtists(table.New([]string{"genres"}, [][]any{{"[]"}})).Value(0, "genres"))

	assert.Equal(t, int64(0), got.Value(1, "followers"))
	assert.Equal(t, int64(0), got.Value(2, "followers"))
	assert.Equal(t, int64(12), got.Value(2, "popularity"))
	assert.Equal(t, UnknownName, got.Value(2, "name"))

	// The first artist without an id is kept, the second is a duplicate.
	assert.Equal(t, "NoID1", got.Value(3, "name"))
}

func TestCleanArtistsMalformedGenreLiterals(t *testing.T) {
	raw := table.New([]string{"id", "genres"}, [][]any{
		{"a", "['pop', 'rock'"},
		{"b", "['Pop', Rock]"},
		{"c", "['"},
	})
	got := CleanArtists(raw)
	assert.Equal(t, "pop, rock", got.Value(0, "genres"))
	assert.Equal(t, "pop, rock", got.Value(1, "genres"))
	assert.Equal(t, UnknownGenre, got.Value(2, "genres"))

	// A second pass leaves the cleaned values alone.
	assert.Equal(t, got.Records(), CleanArtists(got).Records())
}

func TestCleanTracks(t *testing.T) {
	got := CleanTracks(rawTracks())
	require.Equal(t, 4, got.Len())

	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), got.Value(0, "release_date"))
	assert.Equal(t, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), got.Value(1, "release_date"))
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), got.Value(2, "release_date"))
	assert.Nil(t, got.Value(3, "release_date"))

	// The median of 50, 90, 60 and 1 is 55, computed before deduplication.
	assert.Equal(t, int64(55), got.Value(1, "popularity"))
	assert.Equal(t, 3.0, got.Value(1, "duration_ms"))
	assert.Equal(t, UnknownName, got.Value(1, "name"))
}

func TestCleanTracksPromotesFractionalMedian(t *testing.T) {
	raw := table.New([]string{"id", "popularity"}, [][]any{
		{"a", int64(1)},
		{"b", int64(2)},
		{"c", nil},
	})
	got := CleanTracks(raw)
	assert.Equal(t, table.KindFloat, got.Kind("popularity"))
	assert.Equal(t, 1.5, got.Value(2, "popularity"))
	assert.Equal(t, 1.0, got.Value(0, "popularity"))
}

func TestCleanFeatures(t *testing.T) {
	raw := table.New([]string{"genre", "Track Id", "energy"}, [][]any{
		{"Pop", "t1", 0.5},
		{"Rock", "t2", nil},
		{"Rock", "t1", 1.0},
	})
	got := CleanFeatures(raw)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, 0.75, got.Value(1, "energy"))
	assert.Equal(t, "Pop", got.Value(0, "genre"))
}

func TestCleanIsIdempotent(t *testing.T) {
	ds := &loader.Datasets{
		Artists: rawArtists(),
		Tracks:  rawTracks(),
		Features: table.New([]string{"track_id", "energy"}, [][]any{
			{"t1", 0.5}, {"t2", nil},
		}),
	}
	once := Clean(ds)
	twice := Clean(once)

	assert.Equal(t, once.Artists.Records(), twice.Artists.Records())
	assert.Equal(t, once.Tracks.Records(), twice.Tracks.Records())
	assert.Equal(t, once.Features.Records(), twice.Features.Records())
}

func TestCleanedTablesHaveNoMissingNumerics(t *testing.T) {
	for _, tbl := range []*table.Table{CleanArtists(rawArtists()), CleanTracks(rawTracks())} {
		for _, col := range tbl.Columns() {
			if !tbl.Kind(col).Numeric() {
				continue
			}
			for i, v := range tbl.Column(col) {
				assert.NotNil(t, v, "%s row %d", col, i)
			}
		}
	}
}

func TestCleanSkipsAbsentColumns(t *testing.T) {
	raw := table.New([]string{"Name"}, [][]any{{"x"}, {nil}})
	got := CleanArtists(raw)
	assert.Equal(t, []string{"name"}, got.Columns())
	assert.Equal(t, UnknownName, got.Value(1, "name"))

	// The input is left untouched.
	assert.Nil(t, raw.Value(1, "Name"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   any
		want time.Time
		ok   bool
	}{
		{"1999-12-31", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"1999", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2001-02-03T04:05:06Z", time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), true},
		{"2001-02-03 04:05:06", time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), true},
		{int64(1987), time.Date(1987, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"01/02/2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"Jan 2, 2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"March 7, 1999", time.Date(1999, 3, 7, 0, 0, 0, 0, time.UTC), true},
		{"1332151919", time.Time{}, false},
		{int64(12), time.Time{}, false},
		{"", time.Time{}, false},
		{"soon", time.Time{}, false},
		{nil, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseDate(%#v)", tt.in)
		assert.Equal(t, tt.want, got, "ParseDate(%#v)", tt.in)
	}
}
