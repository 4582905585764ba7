// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recommend-engine/internal/engine"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Surface well-rated items outside a user's usual genres",
	Long: `Discover returns unseen, well-rated items whose genres fall outside the
user's top preferred genres. When the user has engaged with every
catalog genre, it surfaces well-rated items that are not already
mainstream instead.`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	opts := optionsFromFlags(cmd)
	if opts.UserID == "" {
		return fmt.Errorf("user required: provide --user")
	}
	return runStrategy(cmd, engine.StrategyDiscovery, opts)
}

func init() {
	discoverCmd.Flags().String("user", "", "requesting user ID")
	addStrategyFlags(discoverCmd)

	rootCmd.AddCommand(discoverCmd)
}
