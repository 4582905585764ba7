// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Popular ranks items by completed-status count within the request's
// trailing timeframe. It serves the universal trending feed and is the
// cold-start fallback for every personalized strategy.
func (e *Engine) Popular(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	since := opts.Timeframe.Since(e.now())

	counts, err := e.log.TopCompleted(ctx, since, opts.limit()*e.cfg.CandidateMultiplier)
	if err != nil {
		return nil, fmt.Errorf("counting completions: %w", err)
	}

	seen, err := e.seenByUser(ctx, opts)
	if err != nil {
		return nil, err
	}

	var cands []types.RecommendationCandidate
	for _, c := range counts {
		if seen[c.ContentID] {
			continue
		}
		cands = append(cands, types.RecommendationCandidate{
			ContentID: c.ContentID,
			Score:     float64(c.Count),
			Source:    types.SourcePopular,
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
