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
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/loader"
)

var topTracksNumber int
var topTracksThreshold string
var topTracksArtist string
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [from (optional)] [to (optional)]",
	Short: "Lists the most popular tracks",
	Long: `Optionally restricted to tracks released in the specified date or date range.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopTracks(args, topTracksNumber, topTracksThreshold, topTracksArtist)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", analysis.DefaultTopNTracks, "number of results to return")
	topTracksCmd.Flags().StringVar(&topTracksThreshold, "threshold", strconv.Itoa(analysis.DefaultThreshold), "only rank tracks more popular than this, or 'none'")
	topTracksCmd.Flags().StringVar(&topTracksArtist, "artist", "", "only rank tracks by this artist")
}

// parseThreshold reads a popularity threshold. "none" disables filtering.
func parseThreshold(s string) (*int, error) {
	if strings.EqualFold(s, "none") || s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("Invalid threshold %q: %w", s, err)
	}
	return &v, nil
}

func printTopTracks(args []string, numToReturn int, thresholdString string, artist string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}
	threshold, err := parseThreshold(thresholdString)
	if err != nil {
		return err
	}

	ds, err := loadCleaned()
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn, FilterThreshold: threshold}
	out, err := TopTracksAnalyzer{Artist: artist}.SetConfig(config).GetResults(ds, start, end)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
	Artist string
}

func (t TopTracksAnalyzer) SetConfig(config AnalyserConfig) TopTracksAnalyzer {
	t.Config = config
	return t
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top popular tracks"
}

func (t TopTracksAnalyzer) GetResults(ds *loader.Datasets, start time.Time, end time.Time) (Analysis, error) {
	filtered := analysis.FilterTracks(ds.Tracks, analysis.TrackFilter{Artist: t.Artist, Since: start, Until: end})
	top := analysis.TopPopularTracks(filtered, t.Config.FilterThreshold, t.Config.NumToReturn)

	summary := fmt.Sprintf("%d of %d tracks ranked", top.Len(), filtered.Len())
	return analysisFromTable(top, []string{"name", "popularity"}, summary)
}
