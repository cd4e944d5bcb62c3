package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/table"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func renders(t *testing.T, c *Chart) {
	t.Helper()
	require.NotNil(t, c)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, c))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output is not a PNG")
}

func TestCorrelationHeatmap(t *testing.T) {
	m := analysis.Matrix{
		Columns: []string{"energy", "loudness"},
		Values:  [][]float64{{1, 0.5}, {0.5, math.NaN()}},
	}
	c, err := CorrelationHeatmap(m, DefaultTitle)
	require.NoError(t, err)
	renders(t, c)
	assert.Equal(t, DefaultTitle, c.Plot.Title.Text)

	skipped, err := CorrelationHeatmap(analysis.Matrix{Columns: []string{"energy"}}, DefaultTitle)
	require.NoError(t, err)
	assert.Nil(t, skipped)
}

func TestGenreBar(t *testing.T) {
	counts := []analysis.GenreCount{{Genre: "pop", Count: 3}, {Genre: "rock", Count: 1}}
	c, err := GenreBar(counts, 15)
	require.NoError(t, err)
	renders(t, c)
	assert.Equal(t, "Top 15 Genres", c.Plot.Title.Text)

	c, err = GenreBar(nil, 15)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestPopularityTrend(t *testing.T) {
	points := []analysis.TrendPoint{
		{Period: time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), Popularity: 60, Tracks: 2},
		{Period: time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), Popularity: 90, Tracks: 1},
	}
	c, err := PopularityTrend(points, "Yearly")
	require.NoError(t, err)
	renders(t, c)
	assert.Equal(t, "Average Track Popularity Over Time (Yearly)", c.Plot.Title.Text)

	c, err = PopularityTrend(nil, "Yearly")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestTopEntities(t *testing.T) {
	artists := table.New([]string{"name", "followers"}, [][]any{
		{"small", int64(1)},
		{"big", int64(100)},
	})
	c, err := TopEntities(artists, "name", "followers", 10, "Top 10 Artists by Followers")
	require.NoError(t, err)
	renders(t, c)
	assert.Equal(t, "Followers", c.Plot.X.Label.Text)

	for _, tt := range []struct {
		name string
		t    *table.Table
		col  string
	}{
		{"empty", artists.Head(0), "followers"},
		{"missing value column", artists, "popularity"},
		{"nil table", nil, "followers"},
	} {
		c, err := TopEntities(tt.t, "name", tt.col, 10, "x")
		require.NoError(t, err, tt.name)
		assert.Nil(t, c, tt.name)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.png")

	written, err := Save(nil, path)
	require.NoError(t, err)
	assert.False(t, written)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	c, err := GenreBar([]analysis.GenreCount{{Genre: "pop", Count: 1}}, 5)
	require.NoError(t, err)
	written, err = Save(c, path)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}
