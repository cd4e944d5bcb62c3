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
)

var topArtistsNumber int
var topArtistsGenre string
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists",
	Short: "Lists the artists with the most followers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopArtists(topArtistsNumber, topArtistsGenre)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", analysis.DefaultTopNArtists, "number of results to return")
	topArtistsCmd.Flags().StringVar(&topArtistsGenre, "genre", "", "only rank artists with exactly these genres")
}

func printTopArtists(numToReturn int, genre string) error {
	ds, err := loadCleaned()
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn}
	out, err := TopArtistsAnalyzer{Genre: genre}.SetConfig(config).GetResults(ds, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
	Genre  string
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists by followers"
}

// GetResults ignores the date range; artists carry no release date.
func (t TopArtistsAnalyzer) GetResults(ds *loader.Datasets, start time.Time, end time.Time) (Analysis, error) {
	artists := analysis.FilterArtists(ds.Artists, analysis.ArtistFilter{Genre: t.Genre})
	top := analysis.TopArtistsByFollowers(artists, t.Config.NumToReturn)

	summary := fmt.Sprintf("%d of %d artists ranked", top.Len(), artists.Len())
	return analysisFromTable(top, []string{"name", "followers"}, summary)
}
