// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-engine CLI, the toolchain
// that turns legal PDFs into article-level text records with provenance for
// downstream retrieval indexing.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// configDefault returns flagValue when set, then the config value for key,
// then fallback.
func configDefault(flagValue, key, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// rootCmd is the base command for the article-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "article-engine",
	Short: "Convert legal PDFs into article-level text records",
	Long: `article-engine converts legal PDFs into article-level text records with
provenance (document id, page range) for downstream retrieval-augmented
indexing.

Each pipeline stage is a subcommand: extract segments PDFs into
articles.jsonl plus per-page HTML sidecars, reshape maps the article
records into the generic GraphRAG input schema, and catalog maintains a
local keyword index over extracted articles.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-engine.yaml or ~/.config/article-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-engine"))
		}
	}

	viper.SetEnvPrefix("ARTICLE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
