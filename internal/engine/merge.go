// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"sort"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Merge combines candidate lists from multiple strategies into one
// ranked list. Duplicate content IDs keep the entry with the higher
// score; on equal scores the stronger source wins (collaborative >
// content_based > similar > discovery > popular). The merged list is
// sorted by score descending with a content-ID tie-break and capped to
// limit.
//
// Merge is pure and order-independent: the result does not depend on the
// order the input lists are supplied, so concurrently produced lists can
// be merged as they arrive.
func Merge(limit int, lists ...[]types.RecommendationCandidate) []types.RecommendationCandidate {
	best := make(map[string]types.RecommendationCandidate)
	for _, list := range lists {
		for _, c := range list {
			cur, ok := best[c.ContentID]
			if !ok || wins(c, cur) {
				best[c.ContentID] = c
			}
		}
	}

	merged := make([]types.RecommendationCandidate, 0, len(best))
	for _, c := range best {
		merged = append(merged, c)
	}

	sortCandidates(merged)
	return capCandidates(merged, limit)
}

// wins reports whether challenger replaces incumbent for the same
// content ID: higher score first, then stronger source.
func wins(challenger, incumbent types.RecommendationCandidate) bool {
	if challenger.Score != incumbent.Score {
		return challenger.Score > incumbent.Score
	}
	return challenger.Source.Priority() < incumbent.Source.Priority()
}

// sortCandidates orders candidates by score descending. Ties break by
// content ID ascending so identical snapshots always produce identical
// ordered output.
func sortCandidates(cands []types.RecommendationCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ContentID < cands[j].ContentID
	})
}

// capCandidates truncates the list to limit. A non-positive limit leaves
// the list unchanged.
func capCandidates(cands []types.RecommendationCandidate, limit int) []types.RecommendationCandidate {
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}
