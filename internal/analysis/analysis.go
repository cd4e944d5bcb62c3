// Package analysis computes rankings, genre counts, popularity trends and
// correlations from cleaned tables. Nothing in here returns an error: a table
// missing the column an analysis needs yields an empty result of the usual
// shape.
package analysis

import (
	"sort"

	"github.com/ademuri/spotify-eda/internal/genre"
	"github.com/ademuri/spotify-eda/internal/table"
)

const (
	DefaultThreshold   = 90
	DefaultTopNTracks  = 10
	DefaultTopNArtists = 10
	DefaultTopNGenres  = 15
)

// TopPopularTracks returns the topN most popular tracks. With a non-nil
// threshold only tracks strictly above it are considered. Tracks with equal
// popularity keep their input order.
func TopPopularTracks(tracks *table.Table, threshold *int, topN int) *table.Table {
	if !tracks.Has("popularity") {
		return tracks.Head(0)
	}
	df := coerceInt(tracks, "popularity")
	if threshold != nil {
		limit := int64(*threshold)
		df = df.Filter(func(i int) bool {
			return df.Value(i, "popularity").(int64) > limit
		})
	}
	return df.SortDesc("popularity").Head(topN)
}

// TopArtistsByFollowers returns the topN artists by follower count, ties in
// input order.
func TopArtistsByFollowers(artists *table.Table, topN int) *table.Table {
	if !artists.Has("followers") {
		return artists.Head(0)
	}
	return coerceInt(artists, "followers").SortDesc("followers").Head(topN)
}

// coerceInt converts col to int64, mapping anything non-numeric to 0.
func coerceInt(t *table.Table, col string) *table.Table {
	values := t.Column(col)
	for i, v := range values {
		n, ok := table.ToInt(v)
		if !ok {
			n = 0
		}
		values[i] = n
	}
	return t.WithColumn(col, values)
}

// GenreDistribution counts every genre token across all artists. The result
// is ordered by count, largest first, and then by the order in which each
// genre was first seen.
func GenreDistribution(artists *table.Table) []GenreCount {
	values := artists.Column("genres")
	if values == nil {
		return []GenreCount{}
	}

	counts := []GenreCount{}
	index := make(map[string]int)
	for _, v := range values {
		for _, g := range genre.Parse(v) {
			i, ok := index[g]
			if !ok {
				i = len(counts)
				index[g] = i
				counts = append(counts, GenreCount{Genre: g})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// HeadGenres returns at most n counts.
func HeadGenres(counts []GenreCount, n int) []GenreCount {
	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
