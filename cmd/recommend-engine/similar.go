// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recommend-engine/internal/engine"
)

var similarCmd = &cobra.Command{
	Use:   "similar [seed-item-id]",
	Short: "Score items similar to a seed item",
	Long: `Similar scores catalog items alike a seed item ("because you watched").
Candidates share the seed's media type and are ranked by genre overlap,
shared directors, and shared actors on a 0-100 scale.

With --user set, items the user has already interacted with are
excluded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimilar,
}

func runSimilar(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd)

	seedID, _ := cmd.Flags().GetString("seed")
	if seedID == "" && len(args) > 0 {
		seedID = args[0]
	}
	if seedID == "" {
		return fmt.Errorf("seed item required: provide an item ID or --seed")
	}
	opts.SeedItemID = seedID

	return runStrategy(cmd, engine.StrategySimilar, opts)
}

func init() {
	similarCmd.Flags().String("seed", "", "seed content ID")
	similarCmd.Flags().String("user", "", "requesting user ID (optional, excludes seen items)")
	addStrategyFlags(similarCmd)

	rootCmd.AddCommand(similarCmd)
}
