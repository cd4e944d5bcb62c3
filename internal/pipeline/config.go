package pipeline

import (
	"fmt"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/loader"
)

// Config holds the options of a batch run.
type Config struct {
	DataDir    string
	ResultsDir string
	Sources    loader.Sources

	// Only tracks more popular than this are ranked. Nil ranks every track.
	Threshold *int

	TopNTracks  int
	TopNArtists int
	TopNGenres  int

	Frequency      analysis.Frequency
	FrequencyLabel string

	// Also write every result into one spreadsheet.
	Workbook bool
}

func DefaultConfig() Config {
	threshold := analysis.DefaultThreshold
	return Config{
		DataDir:        "data",
		ResultsDir:     "results",
		Sources:        loader.DefaultSources(),
		Threshold:      &threshold,
		TopNTracks:     analysis.DefaultTopNTracks,
		TopNArtists:    analysis.DefaultTopNArtists,
		TopNGenres:     analysis.DefaultTopNGenres,
		Frequency:      analysis.Yearly,
		FrequencyLabel: analysis.Yearly.Label(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.DataDir == "":
		return fmt.Errorf("data directory is not set")
	case c.ResultsDir == "":
		return fmt.Errorf("results directory is not set")
	case c.TopNTracks < 0, c.TopNArtists < 0, c.TopNGenres < 0:
		return fmt.Errorf("top-N counts must not be negative")
	}
	return nil
}
