// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recommend-engine/internal/engine"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score personalized recommendations for a user",
	Long: `Recommend scores catalog items for a user. The default personalized
strategy runs collaborative and content-based scoring concurrently and
merges the results; --strategy selects a single strategy instead.

A user with too little interaction history falls back to the popularity
feed automatically.`,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd)
	if opts.UserID == "" {
		return fmt.Errorf("user required: provide --user")
	}

	name, _ := cmd.Flags().GetString("strategy")
	strategy := engine.Strategy(name)
	switch strategy {
	case engine.StrategyPersonalized, engine.StrategyCollaborative, engine.StrategyContentBased:
	default:
		return fmt.Errorf("unsupported strategy %q: use personalized, collaborative, or content_based", name)
	}

	return runStrategy(cmd, strategy, opts)
}

func init() {
	recommendCmd.Flags().String("user", "", "requesting user ID")
	recommendCmd.Flags().String("strategy", "personalized", "scoring strategy: personalized, collaborative, or content_based")
	addStrategyFlags(recommendCmd)

	rootCmd.AddCommand(recommendCmd)
}
