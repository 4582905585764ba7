// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the recommend-engine CLI. The
// scoring engine itself lives in internal/engine; the CLI wires it to
// the SQLite-backed catalog and interaction store and exposes one
// subcommand per strategy.
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

// rootCmd is the base command for the recommend-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "recommend-engine",
	Short: "Catalog recommendation scoring engine",
	Long: `recommend-engine scores catalog recommendations from observed interaction
history. Each strategy is a subcommand: recommend (personalized blend),
similar (because-you-watched), trending (popularity), and discover
(outside the user's usual genres). The catalog command manages the
underlying SQLite store.

All computation is stateless and on-demand over the currently stored
interaction and catalog data.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./recommend-engine.yaml or ~/.config/recommend-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for the store (contains fixtures/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("recommend-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "recommend-engine"))
		}
	}

	viper.SetEnvPrefix("RECOMMEND_ENGINE")
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
