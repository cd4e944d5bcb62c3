package analysis

import (
	"time"

	"github.com/ademuri/spotify-eda/internal/table"
)

// GenreCount is one row of the genre distribution.
type GenreCount struct {
	Genre string `yaml:"genre" json:"genre"`
	Count int    `yaml:"count" json:"count"`
}

// TrendPoint is the mean popularity of the tracks released in one bucket.
type TrendPoint struct {
	// Period is the last day of the bucket.
	Period     time.Time `yaml:"-" json:"-"`
	Popularity float64   `yaml:"popularity" json:"popularity"`
	Tracks     int       `yaml:"tracks" json:"tracks"`
}

func (p TrendPoint) Label() string {
	return p.Period.Format(table.DateFormat)
}

// Matrix is a square correlation matrix over Columns. Values[i][j] is NaN
// when the pair has too few rows or no variance.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

func (m Matrix) Empty() bool {
	return len(m.Columns) == 0
}

// TrackFilter restricts tracks by artist and release date. Since and Until
// bound a half-open range [Since, Until); zero values leave that side open.
type TrackFilter struct {
	Artist string
	Since  time.Time
	Until  time.Time
}

type ArtistFilter struct {
	Artist string
	Genre  string
}

// AllValues is the filter value meaning "no restriction".
const AllValues = "All"
