// Package pipeline runs the batch analysis: load, clean, analyze, print a
// summary, then write result files and charts.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/chart"
	"github.com/ademuri/spotify-eda/internal/cleaner"
	"github.com/ademuri/spotify-eda/internal/loader"
	"github.com/ademuri/spotify-eda/internal/report"
	"github.com/ademuri/spotify-eda/internal/table"
)

// Results are the derived aggregates of one run.
type Results struct {
	TopTracks   *table.Table
	TopArtists  *table.Table
	Genres      []analysis.GenreCount
	Trend       []analysis.TrendPoint
	Correlation analysis.Matrix

	// Rows counts the rows of each cleaned dataset.
	Rows map[string]int
	// Artifacts lists the files the run wrote.
	Artifacts []string
}

// Analyze computes every aggregate from cleaned datasets.
func Analyze(ds *loader.Datasets, cfg Config, logger hclog.Logger) *Results {
	r := &Results{
		Rows: map[string]int{
			"artists":  ds.Artists.Len(),
			"tracks":   ds.Tracks.Len(),
			"features": ds.Features.Len(),
		},
	}

	logger.Info("Analyzing top popular tracks...")
	r.TopTracks = analysis.TopPopularTracks(ds.Tracks, cfg.Threshold, cfg.TopNTracks)

	logger.Info("Analyzing top artists by followers...")
	r.TopArtists = analysis.TopArtistsByFollowers(ds.Artists, cfg.TopNArtists)

	logger.Info("Analyzing genre distribution...")
	r.Genres = analysis.GenreDistribution(ds.Artists)

	logger.Info("Analyzing popularity trend...")
	r.Trend = analysis.PopularityTrend(ds.Tracks, cfg.Frequency)

	r.Correlation = analysis.Correlation(ds.Features)
	return r
}

// Run executes a whole batch run and prints the summary tables to out.
func Run(cfg Config, logger hclog.Logger, out io.Writer) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	started := time.Now().UTC()
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.ResultsDir, err)
	}

	logger.Info("Loading datasets...", "dir", cfg.DataDir)
	raw, err := loader.Load(cfg.DataDir, cfg.Sources)
	if err != nil {
		return nil, err
	}

	logger.Info("Cleaning datasets...")
	ds := cleaner.Clean(raw)

	results := Analyze(ds, cfg, logger)

	if err := Display(out, results, cfg); err != nil {
		return nil, fmt.Errorf("displaying results: %w", err)
	}

	logger.Info("Saving analysis results...")
	saved, err := Save(results, cfg)
	if err != nil {
		return nil, err
	}
	results.Artifacts = append(results.Artifacts, saved...)

	logger.Info("Generating visualizations...")
	charts, err := Visualize(results, cfg)
	if err != nil {
		return nil, err
	}
	results.Artifacts = append(results.Artifacts, charts...)

	if cfg.Workbook {
		files, err := report.WriteWorkbook(cfg.ResultsDir, Sheets(results))
		if err != nil {
			return nil, err
		}
		results.Artifacts = append(results.Artifacts, files...)
	}

	summary, err := report.WriteSummary(cfg.ResultsDir, Summarize(results, cfg, runID, started))
	if err != nil {
		return nil, err
	}
	results.Artifacts = append(results.Artifacts, summary...)

	logger.Info("Analysis complete.", "artifacts", len(results.Artifacts))
	return results, nil
}

// Save writes the rankings, the genre distribution and the trend.
func Save(r *Results, cfg Config) ([]string, error) {
	var files []string
	for _, t := range []struct {
		base  string
		table *table.Table
	}{
		{"top_tracks", r.TopTracks},
		{"top_artists", r.TopArtists},
	} {
		written, err := report.WriteTable(cfg.ResultsDir, t.base, t.table)
		if err != nil {
			return nil, err
		}
		files = append(files, written...)
	}

	written, err := report.WriteGenreCounts(cfg.ResultsDir, r.Genres)
	if err != nil {
		return nil, err
	}
	files = append(files, written...)

	written, err = report.WriteTrend(cfg.ResultsDir, r.Trend)
	if err != nil {
		return nil, err
	}
	return append(files, written...), nil
}

// Visualize renders every chart into the results directory. Charts with
// nothing to draw are skipped.
func Visualize(r *Results, cfg Config) ([]string, error) {
	builders := []struct {
		file  string
		build func() (*chart.Chart, error)
	}{
		{"correlation_heatmap.png", func() (*chart.Chart, error) {
			return chart.CorrelationHeatmap(r.Correlation, chart.DefaultTitle)
		}},
		{"genre_distribution.png", func() (*chart.Chart, error) {
			return chart.GenreBar(r.Genres, cfg.TopNGenres)
		}},
		{"popularity_trend.png", func() (*chart.Chart, error) {
			return chart.PopularityTrend(r.Trend, cfg.FrequencyLabel)
		}},
		{"top_artists.png", func() (*chart.Chart, error) {
			return chart.TopEntities(r.TopArtists, "name", "followers", cfg.TopNArtists,
				fmt.Sprintf("Top %d Artists by Followers", cfg.TopNArtists))
		}},
		{"top_tracks.png", func() (*chart.Chart, error) {
			return chart.TopEntities(r.TopTracks, "name", "popularity", cfg.TopNTracks,
				fmt.Sprintf("Top %d Tracks by Popularity", cfg.TopNTracks))
		}},
	}

	var files []string
	for _, b := range builders {
		c, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", b.file, err)
		}
		path := filepath.Join(cfg.ResultsDir, b.file)
		written, err := chart.Save(c, path)
		if err != nil {
			return nil, err
		}
		if written {
			files = append(files, path)
		}
	}
	return files, nil
}

// Sheets lays the results out as workbook sheets.
func Sheets(r *Results) []report.Sheet {
	return []report.Sheet{
		{Name: "Top Tracks", Table: r.TopTracks},
		{Name: "Top Artists", Table: r.TopArtists},
		{Name: "Genres", Table: report.GenreTable(r.Genres)},
		{Name: "Popularity Trend", Table: report.TrendTable(r.Trend)},
	}
}

func Summarize(r *Results, cfg Config, runID string, started time.Time) report.Summary {
	return report.Summary{
		RunID:    runID,
		Started:  started,
		Finished: time.Now().UTC(),
		Config: report.SummaryConfig{
			DataDir:        cfg.DataDir,
			ResultsDir:     cfg.ResultsDir,
			Threshold:      cfg.Threshold,
			TopNTracks:     cfg.TopNTracks,
			TopNArtists:    cfg.TopNArtists,
			TopNGenres:     cfg.TopNGenres,
			Frequency:      cfg.Frequency.String(),
			FrequencyLabel: cfg.FrequencyLabel,
		},
		Rows:      r.Rows,
		Artifacts: append(append([]string(nil), r.Artifacts...), filepath.Join(cfg.ResultsDir, report.SummaryFile)),
	}
}
