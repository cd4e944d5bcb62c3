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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-eda/internal/cache"
	"github.com/ademuri/spotify-eda/internal/dashboard"
	"github.com/ademuri/spotify-eda/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the interactive dashboard API",
	Long: `Loads and cleans the datasets once, then answers filter, ranking, genre,
trend, correlation and chart requests over HTTP until interrupted.
Responses are cached in memory, in SQLite, or not at all.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := serveDashboard(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8501", "address to listen on")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))

	serveCmd.Flags().String("cache", "memory", "response cache: memory, sqlite or none")
	viper.BindPFlag("cache", serveCmd.Flags().Lookup("cache"))

	serveCmd.Flags().Int("cache_entries", cache.DefaultMemoryEntries, "responses kept by --cache=memory")
	viper.BindPFlag("cache_entries", serveCmd.Flags().Lookup("cache_entries"))

	serveCmd.Flags().Float64("rps", 20, "requests per second allowed, 0 for no limit")
	viper.BindPFlag("rps", serveCmd.Flags().Lookup("rps"))

	serveCmd.Flags().Bool("verbose", false, "log every request")
	viper.BindPFlag("verbose", serveCmd.Flags().Lookup("verbose"))
}

// openCache returns the response cache named by kind and a function that
// releases it.
func openCache(kind string, dbPath string, entries int) (cache.Cache, func() error, error) {
	noop := func() error { return nil }
	switch kind {
	case "", "memory":
		return cache.NewMemory(entries), noop, nil
	case "none":
		return cache.Nop{}, noop, nil
	case "sqlite":
		db, err := store.New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("Unknown cache %q, expected memory, sqlite or none", kind)
}

func serveDashboard(ctx context.Context) error {
	level := hclog.Info
	if viper.GetBool("verbose") {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "spotify-eda",
		Level:  level,
		Output: os.Stderr,
	})
	gin.SetMode(gin.ReleaseMode)

	c, closeCache, err := openCache(viper.GetString("cache"), viper.GetString("cache_db"), viper.GetInt("cache_entries"))
	if err != nil {
		return err
	}
	defer closeCache()

	logger.Info("Loading datasets...", "dir", viper.GetString("data_dir"))
	server, err := dashboard.Open(viper.GetString("data_dir"), sourcesFromConfig(), dashboard.Options{
		Cache:             c,
		RequestsPerSecond: viper.GetFloat64("rps"),
		Burst:             int(viper.GetFloat64("rps")) + 1,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	return server.Run(ctx, viper.GetString("addr"))
}
