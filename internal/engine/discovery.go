// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Discovery surfaces well-rated items outside the user's comfort zone:
// unseen items whose genres fall outside the user's top preferred
// genres, ordered by average rating. When the user has engaged with
// every catalog genre, it falls back to well-rated items ordered by
// rating and then ascending total-interaction popularity, surfacing
// quality items that are not already mainstream.
func (e *Engine) Discovery(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("discovery recommendations require a user ID")
	}

	profile, err := e.preferenceProfile(ctx, opts.UserID)
	if err != nil {
		return nil, err
	}
	topGenres := profile.TopGenres(e.cfg.TopGenreCount)

	allGenres, err := e.catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching genre list: %w", err)
	}

	top := make(map[string]bool, len(topGenres))
	for _, g := range topGenres {
		top[g] = true
	}
	var discoveryGenres []string
	for _, g := range allGenres {
		if !top[g] {
			discoveryGenres = append(discoveryGenres, g)
		}
	}

	seen, err := e.seenByUser(ctx, opts)
	if err != nil {
		return nil, err
	}

	filter := ItemFilter{
		MinRating:  e.cfg.DiscoveryRating,
		ExcludeIDs: excludeList(seen),
		Genres:     discoveryGenres,
	}
	poolLimit := opts.limit() * e.cfg.CandidateMultiplier

	if len(discoveryGenres) > 0 {
		pool, err := e.catalog.QueryItems(ctx, filter, poolLimit)
		if err != nil {
			return nil, fmt.Errorf("querying candidates: %w", err)
		}
		return rankByRating(pool, opts), nil
	}

	// Exhaustive case: the user has touched every genre. Rank by rating
	// with an inverse-popularity tie-break.
	pool, err := e.catalog.QueryItems(ctx, filter, poolLimit)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}

	ids := make([]string, len(pool))
	for i, item := range pool {
		ids[i] = item.ID
	}
	recs, err := e.log.InteractionsForItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("counting interactions: %w", err)
	}
	popularity := make(map[string]int)
	for _, r := range recs {
		popularity[r.ContentID]++
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].AverageRating != pool[j].AverageRating {
			return pool[i].AverageRating > pool[j].AverageRating
		}
		pi, pj := popularity[pool[i].ID], popularity[pool[j].ID]
		if pi != pj {
			return pi < pj
		}
		return pool[i].ID < pool[j].ID
	})

	return candidatesFromItems(pool, opts), nil
}

// rankByRating orders a candidate pool by average rating descending with
// a deterministic ID tie-break.
func rankByRating(pool []types.ContentItem, opts Options) []types.RecommendationCandidate {
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].AverageRating != pool[j].AverageRating {
			return pool[i].AverageRating > pool[j].AverageRating
		}
		return pool[i].ID < pool[j].ID
	})
	return candidatesFromItems(pool, opts)
}

func candidatesFromItems(pool []types.ContentItem, opts Options) []types.RecommendationCandidate {
	limit := opts.limit()
	if len(pool) > limit {
		pool = pool[:limit]
	}
	cands := make([]types.RecommendationCandidate, len(pool))
	for i, item := range pool {
		cands[i] = types.RecommendationCandidate{
			ContentID: item.ID,
			Score:     item.AverageRating,
			Source:    types.SourceDiscovery,
		}
	}
	return cands
}
