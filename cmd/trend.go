/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/loader"
	"github.com/ademuri/spotify-eda/internal/report"
)

var trendFrequency string
var trendArtist string
var trendCmd = &cobra.Command{
	Use:   "trend [from (optional)] [to (optional)]",
	Short: "Shows mean track popularity per release period",
	Long: `Groups tracks by release year or month. Date strings look like 'yyyy',
'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTrend(args, trendFrequency, trendArtist)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)

	trendCmd.Flags().StringVar(&trendFrequency, "freq", analysis.Yearly.String(), "bucket frequency: YE (yearly) or ME (monthly)")
	trendCmd.Flags().StringVar(&trendArtist, "artist", "", "only include tracks by this artist")
}

func printTrend(args []string, freqString string, artist string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}
	freq, err := analysis.ParseFrequency(freqString)
	if err != nil {
		return err
	}

	ds, err := loadCleaned()
	if err != nil {
		return err
	}

	out, err := TrendAnalyzer{Frequency: freq, Artist: artist}.GetResults(ds, start, end)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TrendAnalyzer struct {
	Frequency analysis.Frequency
	Artist    string
}

func (t TrendAnalyzer) GetName() string {
	return fmt.Sprintf("Popularity trend (%s)", t.Frequency.Label())
}

func (t TrendAnalyzer) GetResults(ds *loader.Datasets, start time.Time, end time.Time) (Analysis, error) {
	tracks := analysis.FilterTracks(ds.Tracks, analysis.TrackFilter{Artist: t.Artist, Since: start, Until: end})
	points := analysis.PopularityTrend(tracks, t.Frequency)

	summary := fmt.Sprintf("%d periods from %d tracks", len(points), tracks.Len())
	return analysisFromTable(report.TrendTable(points), nil, summary)
}
