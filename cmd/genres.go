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

var genresNumber int
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Counts how many artists list each genre",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printGenres(genresNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)

	genresCmd.Flags().IntVarP(&genresNumber, "number", "n", analysis.DefaultTopNGenres, "number of genres to show")
}

func printGenres(numToReturn int) error {
	ds, err := loadCleaned()
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn}
	out, err := GenresAnalyzer{Config: config}.GetResults(ds, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type GenresAnalyzer struct {
	Config AnalyserConfig
}

func (g GenresAnalyzer) GetName() string {
	return "Genre distribution"
}

func (g GenresAnalyzer) GetResults(ds *loader.Datasets, start time.Time, end time.Time) (Analysis, error) {
	counts := analysis.GenreDistribution(ds.Artists)
	head := analysis.HeadGenres(counts, g.Config.NumToReturn)

	summary := fmt.Sprintf("%d distinct genres", len(counts))
	return analysisFromTable(report.GenreTable(head), nil, summary)
}
