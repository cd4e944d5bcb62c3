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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-eda/internal/cleaner"
	"github.com/ademuri/spotify-eda/internal/loader"
)

var cfgFile string
var dataDir string
var resultsDir string
var artistsFile string
var tracksFile string
var featuresFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-eda",
	Short: "Explores the Spotify artists, tracks and audio features datasets",
	Long: `Loads artists.csv, tracks.csv and SpotifyFeatures.csv from the data
directory, cleans them, and reports top tracks, top artists, genre
frequencies, popularity trends and feature correlations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-eda.yaml)")

	defaults := loader.DefaultSources()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data_dir", "./data", "Directory holding the source CSV files")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))

	rootCmd.PersistentFlags().StringVar(&resultsDir, "results_dir", "./results", "Directory to write results to")
	viper.BindPFlag("results_dir", rootCmd.PersistentFlags().Lookup("results_dir"))

	rootCmd.PersistentFlags().StringVar(&artistsFile, "artists_file", defaults.Artists, "Artists file name")
	viper.BindPFlag("artists_file", rootCmd.PersistentFlags().Lookup("artists_file"))

	rootCmd.PersistentFlags().StringVar(&tracksFile, "tracks_file", defaults.Tracks, "Tracks file name")
	viper.BindPFlag("tracks_file", rootCmd.PersistentFlags().Lookup("tracks_file"))

	rootCmd.PersistentFlags().StringVar(&featuresFile, "features_file", defaults.Features, "Audio features file name")
	viper.BindPFlag("features_file", rootCmd.PersistentFlags().Lookup("features_file"))

	rootCmd.PersistentFlags().String("cache_db", "./spotify-eda-cache.db", "SQLite database holding cached dashboard responses")
	viper.BindPFlag("cache_db", rootCmd.PersistentFlags().Lookup("cache_db"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-eda" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-eda")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func sourcesFromConfig() loader.Sources {
	return loader.Sources{
		Artists:  viper.GetString("artists_file"),
		Tracks:   viper.GetString("tracks_file"),
		Features: viper.GetString("features_file"),
	}
}

// loadCleaned reads and cleans the datasets named by the current config.
func loadCleaned() (*loader.Datasets, error) {
	raw, err := loader.Load(viper.GetString("data_dir"), sourcesFromConfig())
	if err != nil {
		return nil, err
	}
	return cleaner.Clean(raw), nil
}
