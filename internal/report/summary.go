package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const SummaryFile = "summary.yaml"

// Summary describes one batch run.
type Summary struct {
	RunID     string         `yaml:"run_id"`
	Started   time.Time      `yaml:"started"`
	Finished  time.Time      `yaml:"finished"`
	Config    SummaryConfig  `yaml:"config"`
	Rows      map[string]int `yaml:"rows"`
	Artifacts []string       `yaml:"artifacts"`
}

type SummaryConfig struct {
	DataDir        string `yaml:"data_dir"`
	ResultsDir     string `yaml:"results_dir"`
	Threshold      *int   `yaml:"threshold"`
	TopNTracks     int    `yaml:"top_n_tracks"`
	TopNArtists    int    `yaml:"top_n_artists"`
	TopNGenres     int    `yaml:"top_n_genres"`
	Frequency      string `yaml:"frequency"`
	FrequencyLabel string `yaml:"frequency_label"`
}

func WriteSummary(dir string, s Summary) ([]string, error) {
	path := filepath.Join(dir, SummaryFile)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	return []string{path}, nil
}
