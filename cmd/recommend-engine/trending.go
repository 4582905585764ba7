// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/recommend-engine/internal/engine"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Rank items by recent completions",
	Long: `Trending ranks catalog items by how many users completed them within a
trailing window (--timeframe week, month, year, or all). No user is
required; with --user set, items that user has seen are excluded.`,
	RunE: runTrending,
}

func runTrending(cmd *cobra.Command, args []string) error {
	return runStrategy(cmd, engine.StrategyPopular, optionsFromFlags(cmd))
}

func init() {
	trendingCmd.Flags().String("user", "", "requesting user ID (optional, excludes seen items)")
	addStrategyFlags(trendingCmd)

	rootCmd.AddCommand(trendingCmd)
}
