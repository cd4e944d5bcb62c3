package pipeline

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/report"
	"github.com/ademuri/spotify-eda/internal/table"
)

const trendTail = 5

// Display prints the run summary: both rankings, the head of the genre
// distribution and the latest trend periods.
func Display(out io.Writer, r *Results, cfg Config) error {
	sections := []struct {
		title string
		t     *table.Table
		cols  []string
	}{
		{"Top Popular Tracks", r.TopTracks, []string{"name", "popularity"}},
		{"Top Artists by Followers", r.TopArtists, []string{"name", "followers"}},
		{fmt.Sprintf("Genre Distribution (Top %d)", cfg.TopNGenres),
			report.GenreTable(analysis.HeadGenres(r.Genres, cfg.TopNGenres)), nil},
		{fmt.Sprintf("Popularity Trend (%s)", cfg.FrequencyLabel),
			report.TrendTable(analysis.TailTrend(r.Trend, trendTail)), nil},
	}
	for _, s := range sections {
		fmt.Fprintf(out, "\n=== %s ===\n", s.title)
		t := s.t
		if s.cols != nil {
			selected, err := t.Select(s.cols...)
			if err != nil {
				fmt.Fprintf(out, "(unavailable: %v)\n", err)
				continue
			}
			t = selected
		}
		if err := RenderTable(out, t); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable prints t as a console table. An empty table prints a note
// instead.
func RenderTable(out io.Writer, t *table.Table) error {
	if t.Len() == 0 {
		fmt.Fprintln(out, "(no results)")
		return nil
	}
	records := t.Records()
	tw := tablewriter.NewWriter(out)
	tw.Header(records[0])
	for _, row := range records[1:] {
		if err := tw.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}
