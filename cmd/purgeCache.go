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
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-eda/internal/store"
)

var purgeCacheCmd = &cobra.Command{
	Use:   "purge-cache",
	Short: "Deletes every response stored in the SQLite dashboard cache",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := purgeCache(viper.GetString("cache_db"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(purgeCacheCmd)
}

func purgeCache(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("Cache database %s doesn't exist: %w", dbPath, err)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Purge()
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d cached responses\n", n)
	return nil
}
