// Package cleaner normalizes the raw artists, tracks and features tables.
//
// Each Clean function is idempotent and returns a new table. Columns a
// function expects but does not find are skipped rather than reported.
package cleaner

import (
	"fmt"
	"strings"

	"github.com/ademuri/spotify-eda/internal/genre"
	"github.com/ademuri/spotify-eda/internal/loader"
	"github.com/ademuri/spotify-eda/internal/table"
)

const (
	UnknownName  = "Unknown"
	UnknownGenre = "unknown"
)

// NormalizeColumnName lowercases a header and replaces spaces with
// underscores.
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func normalizeColumns(t *table.Table) *table.Table {
	return t.RenameColumns(NormalizeColumnName)
}

// CleanArtists coerces counts, flattens genres, fills names and drops
// duplicate ids.
func CleanArtists(t *table.Table) *table.Table {
	df := normalizeColumns(t)
	df = mapColumn(df, "followers", nonNegativeInt)
	df = mapColumn(df, "popularity", nonNegativeInt)
	df = mapColumn(df, "genres", flattenGenres)
	df = fillMissing(df, "name", UnknownName)
	return dropDuplicates(df, "id")
}

// CleanTracks parses release dates, median-fills numeric columns, fills names
// and drops duplicate ids.
func CleanTracks(t *table.Table) *table.Table {
	df := normalizeColumns(t)
	df = mapColumn(df, "release_date", func(v any) any {
		if d, ok := ParseDate(v); ok {
			return d
		}
		return nil
	})
	df = fillNumericMedians(df)
	df = fillMissing(df, "name", UnknownName)
	return dropDuplicates(df, "id")
}

// CleanFeatures median-fills numeric columns and drops duplicate track ids.
func CleanFeatures(t *table.Table) *table.Table {
	df := normalizeColumns(t)
	df = fillNumericMedians(df)
	return dropDuplicates(df, "track_id")
}

// Clean runs every dataset through its cleaner.
func Clean(ds *loader.Datasets) *loader.Datasets {
	return &loader.Datasets{
		Artists:  CleanArtists(ds.Artists),
		Tracks:   CleanTracks(ds.Tracks),
		Features: CleanFeatures(ds.Features),
	}
}

func mapColumn(t *table.Table, col string, fn func(any) any) *table.Table {
	values := t.Column(col)
	if values == nil {
		return t
	}
	for i, v := range values {
		values[i] = fn(v)
	}
	return t.WithColumn(col, values)
}

func fillMissing(t *table.Table, col string, fill any) *table.Table {
	return mapColumn(t, col, func(v any) any {
		if v == nil {
			return fill
		}
		return v
	})
}

func nonNegativeInt(v any) any {
	i, ok := table.ToInt(v)
	if !ok || i < 0 {
		return int64(0)
	}
	return i
}

// flattenGenres maps an absent or empty genre list to UnknownGenre so that a
// second pass sees the same value.
func flattenGenres(v any) any {
	flat := genre.Parse(v).Flatten()
	if flat == "" {
		return UnknownGenre
	}
	return flat
}

// fillNumericMedians replaces missing cells of every numeric column with the
// median of that column in t. An integer column whose median is fractional
// becomes a float column.
func fillNumericMedians(t *table.Table) *table.Table {
	out := t
	for _, col := range t.Columns() {
		values := t.Column(col)
		kind := table.KindOf(values)
		if !kind.Numeric() {
			continue
		}
		median, ok := table.Median(values)
		if !ok {
			continue
		}

		var missing bool
		for _, v := range values {
			if v == nil {
				missing = true
				break
			}
		}
		if !missing {
			continue
		}

		var fill any = median
		if kind == table.KindInt {
			if median == float64(int64(median)) {
				fill = int64(median)
			} else {
				values = promoteToFloat(values)
			}
		}
		for i, v := range values {
			if v == nil {
				values[i] = fill
			}
		}
		out = out.WithColumn(col, values)
	}
	return out
}

func promoteToFloat(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if f, ok := table.ToFloat(v); ok {
			out[i] = f
		}
	}
	return out
}

// dropDuplicates keeps the first row for each value of col. Missing ids
// compare equal to each other.
func dropDuplicates(t *table.Table, col string) *table.Table {
	if !t.Has(col) {
		return t
	}
	seen := make(map[string]bool)
	return t.Filter(func(i int) bool {
		v := t.Value(i, col)
		key := "missing"
		if v != nil {
			key = fmt.Sprintf("%T:%s", v, table.FormatCell(v))
		}
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
