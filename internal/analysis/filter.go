package analysis

import (
	"sort"
	"time"

	"github.com/ademuri/spotify-eda/internal/cleaner"
	"github.com/ademuri/spotify-eda/internal/genre"
	"github.com/ademuri/spotify-eda/internal/table"
)

// YearSpan builds the release range covering the whole of the years from
// through to.
func YearSpan(from, to int) (since, until time.Time) {
	since = time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC)
	until = time.Date(to+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return since, until
}

func isAll(v string) bool {
	return v == "" || v == AllValues
}

// FilterTracks keeps the tracks matching f. A track matches an artist when
// its artists cell equals the name or lists it. When either date bound is set
// tracks without a release date are dropped.
func FilterTracks(tracks *table.Table, f TrackFilter) *table.Table {
	return tracks.Filter(func(i int) bool {
		if !isAll(f.Artist) && !hasArtist(tracks.Value(i, "artists"), f.Artist) {
			return false
		}
		if f.Since.IsZero() && f.Until.IsZero() {
			return true
		}
		date, ok := cleaner.ParseDate(tracks.Value(i, "release_date"))
		if !ok {
			return false
		}
		if !f.Since.IsZero() && date.Before(f.Since) {
			return false
		}
		if !f.Until.IsZero() && !date.Before(f.Until) {
			return false
		}
		return true
	})
}

func hasArtist(v any, name string) bool {
	if s, ok := v.(string); ok && s == name {
		return true
	}
	switch genre.Classify(v) {
	case genre.List, genre.LiteralList:
		for _, a := range genre.Parse(v) {
			if a == name {
				return true
			}
		}
	}
	return false
}

// FilterArtists keeps the artists whose name and genres equal the filter
// values.
func FilterArtists(artists *table.Table, f ArtistFilter) *table.Table {
	return artists.Filter(func(i int) bool {
		if !isAll(f.Artist) && table.FormatCell(artists.Value(i, "name")) != f.Artist {
			return false
		}
		if !isAll(f.Genre) && table.FormatCell(artists.Value(i, "genres")) != f.Genre {
			return false
		}
		return true
	})
}

// YearRange reports the first and last release years among tracks.
func YearRange(tracks *table.Table) (first, last int, ok bool) {
	for _, v := range tracks.Column("release_date") {
		date, valid := cleaner.ParseDate(v)
		if !valid {
			continue
		}
		y := date.Year()
		if !ok || y < first {
			first = y
		}
		if !ok || y > last {
			last = y
		}
		ok = true
	}
	return first, last, ok
}

// ArtistNames lists the distinct artist names, sorted.
func ArtistNames(artists *table.Table) []string {
	return distinct(artists.Column("name"))
}

// GenreValues lists the distinct genres cells, sorted.
func GenreValues(artists *table.Table) []string {
	return distinct(artists.Column("genres"))
}

func distinct(values []any) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		if v == nil {
			continue
		}
		s := table.FormatCell(v)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
