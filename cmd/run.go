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
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the whole analysis and writes every result to the results directory",
	Long: `Loads and cleans the datasets, prints the summary tables, then writes the
rankings, genre distribution and trend as CSV and JSON, the charts as PNG,
and a run summary. Progress is logged to the console and to run.log.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := runConfigFromFlags()
		if err == nil {
			err = runPipeline(cfg, os.Stdout)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("threshold", strconv.Itoa(analysis.DefaultThreshold), "only rank tracks more popular than this, or 'none'")
	viper.BindPFlag("threshold", runCmd.Flags().Lookup("threshold"))

	runCmd.Flags().Int("tracks", analysis.DefaultTopNTracks, "number of top tracks to keep")
	viper.BindPFlag("tracks", runCmd.Flags().Lookup("tracks"))

	runCmd.Flags().Int("artists", analysis.DefaultTopNArtists, "number of top artists to keep")
	viper.BindPFlag("artists", runCmd.Flags().Lookup("artists"))

	runCmd.Flags().Int("genres", analysis.DefaultTopNGenres, "number of genres to chart and display")
	viper.BindPFlag("genres", runCmd.Flags().Lookup("genres"))

	runCmd.Flags().String("freq", analysis.Yearly.String(), "trend bucket frequency: YE (yearly) or ME (monthly)")
	viper.BindPFlag("freq", runCmd.Flags().Lookup("freq"))

	runCmd.Flags().String("freq_label", "", "label for the trend frequency (default derived from --freq)")
	viper.BindPFlag("freq_label", runCmd.Flags().Lookup("freq_label"))

	runCmd.Flags().Bool("workbook", false, "also write every result into results.xlsx")
	viper.BindPFlag("workbook", runCmd.Flags().Lookup("workbook"))
}

func runConfigFromFlags() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	cfg.DataDir = viper.GetString("data_dir")
	cfg.ResultsDir = viper.GetString("results_dir")
	cfg.Sources = sourcesFromConfig()

	threshold, err := parseThreshold(viper.GetString("threshold"))
	if err != nil {
		return cfg, err
	}
	cfg.Threshold = threshold

	cfg.TopNTracks = viper.GetInt("tracks")
	cfg.TopNArtists = viper.GetInt("artists")
	cfg.TopNGenres = viper.GetInt("genres")

	freq, err := analysis.ParseFrequency(viper.GetString("freq"))
	if err != nil {
		return cfg, err
	}
	cfg.Frequency = freq
	cfg.FrequencyLabel = freq.Label()
	if label := viper.GetString("freq_label"); label != "" {
		cfg.FrequencyLabel = label
	}

	cfg.Workbook = viper.GetBool("workbook")
	return cfg, cfg.Validate()
}

func runPipeline(cfg pipeline.Config, out io.Writer) error {
	logger, closer, err := pipeline.NewRunLogger(cfg.ResultsDir, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	if _, err := pipeline.Run(cfg, logger, out); err != nil {
		logger.Error("Run failed", "error", err)
		return err
	}
	return nil
}
