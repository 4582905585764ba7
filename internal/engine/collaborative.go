// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Collaborative recommends items highly rated by peers with correlated
// rating histories. Each peer endorsement contributes
// coefficient × rating/5 to the item's score; contributions from
// multiple peers sum. A user with fewer than ColdStartThreshold ratings
// has too little signal and receives the popularity feed instead.
func (e *Engine) Collaborative(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("collaborative recommendations require a user ID")
	}

	ratings, err := e.userRatings(ctx, opts.UserID)
	if err != nil {
		return nil, err
	}
	if len(ratings) < e.cfg.ColdStartThreshold {
		return e.Popular(ctx, opts)
	}

	edges, err := e.similarPeers(ctx, opts.UserID, ratings)
	if err != nil {
		return nil, err
	}

	seen, err := e.seenByUser(ctx, opts)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	for _, edge := range edges {
		peerRatings, err := e.userRatings(ctx, edge.PeerUserID)
		if err != nil {
			return nil, err
		}
		for itemID, rating := range peerRatings {
			if seen[itemID] || rating < e.cfg.FavoriteRating {
				continue
			}
			scores[itemID] += edge.Coefficient * (rating / 5.0)
		}
	}

	cands := make([]types.RecommendationCandidate, 0, len(scores))
	for itemID, score := range scores {
		cands = append(cands, types.RecommendationCandidate{
			ContentID: itemID,
			Score:     score,
			Source:    types.SourceCollaborative,
		})
	}

	if len(opts.IncludeGenres) > 0 {
		cands, err = e.filterByGenres(ctx, cands, opts.IncludeGenres)
		if err != nil {
			return nil, err
		}
	}

	sortCandidates(cands)
	return capCandidates(cands, opts.limit()), nil
}

// filterByGenres keeps candidates whose catalog item carries one of the
// requested genres. Items missing from the catalog are dropped.
func (e *Engine) filterByGenres(ctx context.Context, cands []types.RecommendationCandidate, genres []string) ([]types.RecommendationCandidate, error) {
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.ContentID
	}
	items, err := e.catalog.ItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving candidates: %w", err)
	}
	keep := make(map[string]bool, len(items))
	for _, item := range items {
		if matchesGenres(item, genres) {
			keep[item.ID] = true
		}
	}

	filtered := cands[:0]
	for _, c := range cands {
		if keep[c.ContentID] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
