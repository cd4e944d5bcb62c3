// Package report writes analysis results to the results directory. Each
// writer returns the paths it created so a run can list its artifacts.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/table"
)

const (
	GenreFile = "genre_distribution.csv"
	TrendFile = "popularity_trend.csv"
)

// WriteTable writes t as <base>.csv and <base>.json. An empty table writes
// nothing.
func WriteTable(dir, base string, t *table.Table) ([]string, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	csvPath := filepath.Join(dir, base+".csv")
	if err := writeCSV(csvPath, t.Records()); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, base+".json")
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", jsonPath, err)
	}
	if err := os.WriteFile(jsonPath, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	return []string{csvPath, jsonPath}, nil
}

// WriteGenreCounts writes the distribution as a genre,count table.
func WriteGenreCounts(dir string, counts []analysis.GenreCount) ([]string, error) {
	if len(counts) == 0 {
		return nil, nil
	}
	path := filepath.Join(dir, GenreFile)
	if err := writeCSV(path, GenreTable(counts).Records()); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// WriteTrend writes the trend as a release_date,popularity table.
func WriteTrend(dir string, points []analysis.TrendPoint) ([]string, error) {
	if len(points) == 0 {
		return nil, nil
	}
	path := filepath.Join(dir, TrendFile)
	if err := writeCSV(path, TrendTable(points).Records()); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func GenreTable(counts []analysis.GenreCount) *table.Table {
	rows := make([][]any, len(counts))
	for i, gc := range counts {
		rows[i] = []any{gc.Genre, int64(gc.Count)}
	}
	return table.New([]string{"genre", "count"}, rows)
}

func TrendTable(points []analysis.TrendPoint) *table.Table {
	rows := make([][]any, len(points))
	for i, pt := range points {
		var popularity any = pt.Popularity
		if math.IsNaN(pt.Popularity) {
			popularity = nil
		}
		rows[i] = []any{pt.Period, popularity}
	}
	return table.New([]string{"release_date", "popularity"}, rows)
}

func writeCSV(path string, records [][]string) error {
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("building %s: %w", path, df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
