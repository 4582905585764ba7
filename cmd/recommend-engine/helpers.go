// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/recommend-engine/internal/engine"
	"github.com/pdiddy/recommend-engine/internal/store"
	"github.com/pdiddy/recommend-engine/pkg/types"
)

// engineConfig assembles the scoring tunables from the config file.
// Unset keys take the documented defaults.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		SimilarityThreshold: viper.GetFloat64("engine.similarity_threshold"),
		MinCommonRatings:    viper.GetInt("engine.min_common_ratings"),
		MaxPeers:            viper.GetInt("engine.max_peers"),
		FavoriteRating:      viper.GetFloat64("engine.favorite_rating"),
		ColdStartThreshold:  viper.GetInt("engine.cold_start_threshold"),
		CandidateMultiplier: viper.GetInt("engine.candidate_multiplier"),
		GenreScoreCap:       viper.GetFloat64("engine.genre_score_cap"),
		DirectorScoreCap:    viper.GetFloat64("engine.director_score_cap"),
		ActorScoreCap:       viper.GetFloat64("engine.actor_score_cap"),
		MinSimilarScore:     viper.GetFloat64("engine.min_similar_score"),
		DiscoveryRating:     viper.GetFloat64("engine.discovery_rating"),
		TopGenreCount:       viper.GetInt("engine.top_genre_count"),
	}.ApplyDefaults()
}

// storeConfig reads the store location from the root flag, falling back
// to the config file.
func storeConfig() types.StoreConfig {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	if dataDir == "" {
		dataDir = "data"
	}
	return types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: viper.GetInt("store.max_results"),
	}
}

// optionsFromFlags builds request options from the shared strategy flags.
func optionsFromFlags(cmd *cobra.Command) engine.Options {
	userID, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")
	timeframe, _ := cmd.Flags().GetString("timeframe")
	excludeIDs, _ := cmd.Flags().GetStringSlice("exclude")
	genres, _ := cmd.Flags().GetStringSlice("genre")

	return engine.Options{
		UserID:        userID,
		Limit:         limit,
		Timeframe:     engine.Timeframe(timeframe),
		ExcludeIDs:    excludeIDs,
		IncludeGenres: genres,
	}
}

// runStrategy opens the store, runs one strategy, and writes the results
// as a table or JSON. With --save set the run is also written to a YAML
// file for later inspection.
func runStrategy(cmd *cobra.Command, strategy engine.Strategy, opts engine.Options) error {
	ctx := context.Background()
	cfg := engineConfig()

	st, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	eng := engine.New(st, st, cfg)
	cands, err := eng.Recommend(ctx, strategy, opts, os.Stderr)
	if err != nil {
		return err
	}

	results, err := engine.Resolve(ctx, st, cands)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := engine.WriteRunFile(savePath, strategy, opts, cfg, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return engine.FormatJSON(results, os.Stdout)
	}
	engine.FormatTable(results, os.Stdout)
	return nil
}

// addStrategyFlags registers the flags shared by every strategy command.
func addStrategyFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 20, "maximum number of recommendations")
	cmd.Flags().String("timeframe", "all", "popularity window: week, month, year, or all")
	cmd.Flags().StringSlice("exclude", nil, "content IDs to exclude")
	cmd.Flags().StringSlice("genre", nil, "restrict results to these genres")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().String("save", "", "save the run to a YAML file")
}
