package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/spotify-eda/internal/loader"
)

const artistsCSV = `id,followers,genres,name,popularity
a1,1200,"['pop', 'rock']",Alpha,55
a2,300,"['pop']",Beta,40
a3,,"jazz",Gamma,12
`

const tracksCSV = `id,name,popularity,release_date,artists
t1,One,95,2020-01-02,Alpha
t2,Two,90,2020-06-01,Beta
t3,Three,92,2021-03-04,Alpha
t4,Four,88,,Gamma
t5,Five,95,2021,Beta
`

const featuresCSV = `genre,track_id,energy,loudness,Acoustic Ness
Pop,t1,0.5,-5.0,0.1
Rock,t2,0.7,-3.0,0.3
Jazz,t3,0.2,-12.0,0.9
`

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"artists.csv":         artistsCSV,
		"tracks.csv":          tracksCSV,
		"SpotifyFeatures.csv": featuresCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.DataDir = writeData(t)
	cfg.ResultsDir = filepath.Join(t.TempDir(), "results")
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workbook = true
	var out bytes.Buffer

	results, err := Run(cfg, hclog.NewNullLogger(), &out)
	require.NoError(t, err)

	assert.Equal(t, []any{"t1", "t5", "t3"}, results.TopTracks.Column("id"))
	assert.Equal(t, []any{"Alpha", "Beta", "Gamma"}, results.TopArtists.Column("name"))
	assert.Equal(t, "pop", results.Genres[0].Genre)
	assert.Equal(t, 2, results.Genres[0].Count)
	require.Len(t, results.Trend, 2)
	assert.Equal(t, 92.5, results.Trend[0].Popularity)
	assert.Equal(t, map[string]int{"artists": 3, "tracks": 5, "features": 3}, results.Rows)

	for _, name := range []string{
		"top_tracks.csv", "top_tracks.json",
		"top_artists.csv", "top_artists.json",
		"genre_distribution.csv", "popularity_trend.csv",
		"correlation_heatmap.png", "genre_distribution.png",
		"popularity_trend.png", "top_artists.png", "top_tracks.png",
		"results.xlsx", "summary.yaml",
	} {
		path := filepath.Join(cfg.ResultsDir, name)
		assert.FileExists(t, path)
		assert.Contains(t, results.Artifacts, path)
	}

	printed := out.String()
	assert.Contains(t, printed, "=== Top Popular Tracks ===")
	assert.Contains(t, printed, "=== Genre Distribution (Top 15) ===")
	assert.Contains(t, printed, "=== Popularity Trend (Yearly) ===")
	assert.Contains(t, printed, "Three")
}

func TestRunWithoutThreshold(t *testing.T) {
	cfg := testConfig(t)
	cfg.Threshold = nil
	cfg.TopNTracks = 2

	results, err := Run(cfg, hclog.NewNullLogger(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []any{"t1", "t5"}, results.TopTracks.Column("id"))
}

func TestRunMissingSource(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.DataDir, "artists.csv")))

	_, err := Run(cfg, hclog.NewNullLogger(), &bytes.Buffer{})
	var missing *loader.MissingSourceError
	assert.True(t, errors.As(err, &missing))
}

func TestRunSkipsEmptyArtifacts(t *testing.T) {
	cfg := testConfig(t)
	threshold := 100
	cfg.Threshold = &threshold

	results, err := Run(cfg, hclog.NewNullLogger(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, results.TopTracks.Len())
	assert.NoFileExists(t, filepath.Join(cfg.ResultsDir, "top_tracks.csv"))
	assert.NoFileExists(t, filepath.Join(cfg.ResultsDir, "top_tracks.png"))
	assert.FileExists(t, filepath.Join(cfg.ResultsDir, "top_artists.csv"))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TopNGenres = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ResultsDir = ""
	assert.Error(t, cfg.Validate())
}

func TestNewRunLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	var console bytes.Buffer

	logger, closer, err := NewRunLogger(dir, &console)
	require.NoError(t, err)
	logger.Info("Loading datasets...")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO]  spotify-eda: Loading datasets...")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, string(data), console.String())
}
