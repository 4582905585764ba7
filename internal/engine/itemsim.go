// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Item-similarity weights on the absolute 0–100 scale: genre overlap
// contributes up to 50, a shared director 30, shared actors up to 20.
const (
	simGenreWeight   = 50.0
	simDirectorBonus = 30.0
	simActorWeight   = 20.0
	simActorSaturate = 3.0
)

// SimilarityScore rates how alike a candidate is to a seed item on the
// 0–100 scale:
//
//	genreScore    = |seed ∩ cand genres| / |seed genres| × 50
//	directorBonus = 30 when any director is shared
//	actorScore    = min(|shared actors| / 3 × 20, 20)
//
// The genre term is 0 when the seed has no genres.
func SimilarityScore(seed, cand types.ContentItem) float64 {
	var score float64

	if len(seed.Genres) > 0 {
		shared := intersectCount(seed.Genres, cand.Genres)
		score += float64(shared) / float64(len(seed.Genres)) * simGenreWeight
	}

	if intersectCount(seed.Directors, cand.Directors) > 0 {
		score += simDirectorBonus
	}

	sharedActors := intersectCount(seed.Actors, cand.Actors)
	score += math.Min(float64(sharedActors)/simActorSaturate*simActorWeight, simActorWeight)

	return score
}

func intersectCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	n := 0
	for _, s := range b {
		if set[s] {
			n++
		}
	}
	return n
}

// Similar recommends items alike the seed item ("because you watched").
// Candidates share the seed's media type and exclude the seed itself and
// anything the (optional) requesting user has seen. Candidates scoring
// below MinSimilarScore are rejected. A missing seed fails with
// ErrNotFound.
func (e *Engine) Similar(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	if opts.SeedItemID == "" {
		return nil, fmt.Errorf("seed item %w: no seed item ID supplied", ErrNotFound)
	}

	seed, err := e.catalog.ItemByID(ctx, opts.SeedItemID)
	if err != nil {
		return nil, fmt.Errorf("fetching seed item %s: %w", opts.SeedItemID, err)
	}
	if seed == nil {
		return nil, fmt.Errorf("seed item %s: %w", opts.SeedItemID, ErrNotFound)
	}

	seen, err := e.seenByUser(ctx, opts)
	if err != nil {
		return nil, err
	}
	seen[seed.ID] = true

	filter := ItemFilter{
		MediaType:  seed.MediaType,
		ExcludeIDs: excludeList(seen),
		Genres:     opts.IncludeGenres,
	}
	pool, err := e.catalog.QueryItems(ctx, filter, opts.limit()*e.cfg.CandidateMultiplier)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}

	var cands []types.RecommendationCandidate
	for _, item := range pool {
		score := SimilarityScore(*seed, item)
		if score < e.cfg.MinSimilarScore {
			continue
		}
		cands = append(cands, types.RecommendationCandidate{
			ContentID: item.ID,
			Score:     score,
			Source:    types.SourceSimilar,
		})
	}

	sortCandidates(cands)
	return capCandidates(cands, opts.limit()), nil
}
