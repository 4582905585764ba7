// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// statusWeightCompleted and statusWeightOther scale a favorite's rating
// by how strongly the user committed to it.
const (
	statusWeightCompleted = 1.0
	statusWeightOther     = 0.8
)

// Per-match attribute weights for content-based scoring.
const (
	genreMatchWeight    = 8
	directorMatchWeight = 15
	actorMatchWeight    = 6
)

// PreferenceProfile holds a user's attribute affinities, derived from
// their favorites. Counts drive candidate scoring; weights drive genre
// ranking and the normalized preference vector.
type PreferenceProfile struct {
	GenreCounts    map[string]int
	DirectorCounts map[string]int
	ActorCounts    map[string]int

	genreWeights map[string]float64
}

// Empty reports whether the user had no qualifying favorites.
func (p PreferenceProfile) Empty() bool {
	return len(p.GenreCounts) == 0 && len(p.DirectorCounts) == 0 && len(p.ActorCounts) == 0
}

// GenreVector returns the genre weights normalized to sum to 1 across
// genres with nonzero weight.
func (p PreferenceProfile) GenreVector() map[string]float64 {
	var total float64
	for _, w := range p.genreWeights {
		total += w
	}
	vec := make(map[string]float64, len(p.genreWeights))
	if total == 0 {
		return vec
	}
	for g, w := range p.genreWeights {
		vec[g] = w / total
	}
	return vec
}

// TopGenres returns the n most preferred genres by accumulated weight,
// ties broken by genre name for reproducible output.
func (p PreferenceProfile) TopGenres(n int) []string {
	genres := make([]string, 0, len(p.genreWeights))
	for g := range p.genreWeights {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		wi, wj := p.genreWeights[genres[i]], p.genreWeights[genres[j]]
		if wi != wj {
			return wi > wj
		}
		return genres[i] < genres[j]
	})
	if len(genres) > n {
		genres = genres[:n]
	}
	return genres
}

// preferenceProfile derives a user's attribute affinities from their
// favorites: items rated at or above FavoriteRating or marked completed.
// Each favorite contributes rating × statusWeight to every attribute it
// carries, where completed items weigh 1.0 and others 0.8. A completed
// item without a rating contributes at the favorite threshold.
func (e *Engine) preferenceProfile(ctx context.Context, userID string) (PreferenceProfile, error) {
	profile := PreferenceProfile{
		GenreCounts:    make(map[string]int),
		DirectorCounts: make(map[string]int),
		ActorCounts:    make(map[string]int),
		genreWeights:   make(map[string]float64),
	}

	recs, err := e.log.UserInteractions(ctx, userID)
	if err != nil {
		return profile, fmt.Errorf("fetching interactions for %s: %w", userID, err)
	}

	ratings := make(map[string]float64)
	completed := make(map[string]bool)
	for _, r := range recs {
		switch {
		case r.IsRating():
			ratings[r.ContentID] = r.Value
		case r.IsCompleted():
			completed[r.ContentID] = true
		}
	}

	favoriteIDs := make([]string, 0, len(ratings))
	favoriteSet := make(map[string]bool)
	for id, rating := range ratings {
		if rating >= e.cfg.FavoriteRating {
			favoriteIDs = append(favoriteIDs, id)
			favoriteSet[id] = true
		}
	}
	for id := range completed {
		if !favoriteSet[id] {
			favoriteIDs = append(favoriteIDs, id)
			favoriteSet[id] = true
		}
	}
	if len(favoriteIDs) == 0 {
		return profile, nil
	}

	items, err := e.catalog.ItemsByIDs(ctx, favoriteIDs)
	if err != nil {
		return profile, fmt.Errorf("resolving favorites: %w", err)
	}

	for _, item := range items {
		rating, ok := ratings[item.ID]
		if !ok {
			rating = e.cfg.FavoriteRating
		}
		statusWeight := statusWeightOther
		if completed[item.ID] {
			statusWeight = statusWeightCompleted
		}
		weight := rating * statusWeight

		for _, g := range item.Genres {
			profile.GenreCounts[g]++
			profile.genreWeights[g] += weight
		}
		for _, d := range item.Directors {
			profile.DirectorCounts[d]++
		}
		for _, a := range item.Actors {
			profile.ActorCounts[a]++
		}
	}
	return profile, nil
}

// scoreByAttributes scores a candidate against the profile as a weighted
// sum over matched genres, directors, and actors. Each class contributes
// matchCount × classWeight, capped per class so a single prolific
// favorite attribute cannot dominate the ranking.
func (e *Engine) scoreByAttributes(profile PreferenceProfile, item types.ContentItem) (score float64, genreMatches int) {
	var genreScore, directorScore, actorScore float64

	for _, g := range item.Genres {
		if n := profile.GenreCounts[g]; n > 0 {
			genreMatches++
			genreScore += float64(n * genreMatchWeight)
		}
	}
	for _, d := range item.Directors {
		if n := profile.DirectorCounts[d]; n > 0 {
			directorScore += float64(n * directorMatchWeight)
		}
	}
	for _, a := range item.Actors {
		if n := profile.ActorCounts[a]; n > 0 {
			actorScore += float64(n * actorMatchWeight)
		}
	}

	genreScore = math.Min(genreScore, e.cfg.GenreScoreCap)
	directorScore = math.Min(directorScore, e.cfg.DirectorScoreCap)
	actorScore = math.Min(actorScore, e.cfg.ActorScoreCap)
	return genreScore + directorScore + actorScore, genreMatches
}

// ContentBased recommends unseen items whose attributes overlap the
// user's favorites. Candidates with zero genre overlap are excluded; a
// user with no qualifying favorites receives the popularity feed.
func (e *Engine) ContentBased(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	return e.contentBased(ctx, opts, true)
}

// contentBasedBlended relaxes the zero-genre-overlap filter for use
// inside the personalized blend, where popularity and collaborative
// signal cover the gaps.
func (e *Engine) contentBasedBlended(ctx context.Context, opts Options) ([]types.RecommendationCandidate, error) {
	return e.contentBased(ctx, opts, false)
}

func (e *Engine) contentBased(ctx context.Context, opts Options, requireGenreOverlap bool) ([]types.RecommendationCandidate, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("content-based recommendations require a user ID")
	}

	profile, err := e.preferenceProfile(ctx, opts.UserID)
	if err != nil {
		return nil, err
	}
	if profile.Empty() {
		return e.Popular(ctx, opts)
	}

	seen, err := e.seenByUser(ctx, opts)
	if err != nil {
		return nil, err
	}

	filter := ItemFilter{
		ExcludeIDs: excludeList(seen),
		Genres:     opts.IncludeGenres,
	}
	if requireGenreOverlap && len(filter.Genres) == 0 {
		// Restrict the pool to the user's genres up front; anything
		// outside them would score zero overlap anyway.
		filter.Genres = profile.TopGenres(len(profile.GenreCounts))
	}

	pool, err := e.catalog.QueryItems(ctx, filter, opts.limit()*e.cfg.CandidateMultiplier)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}

	var cands []types.RecommendationCandidate
	for _, item := range pool {
		score, genreMatches := e.scoreByAttributes(profile, item)
		if requireGenreOverlap && genreMatches == 0 {
			continue
		}
		if score <= 0 {
			continue
		}
		cands = append(cands, types.RecommendationCandidate{
			ContentID: item.ID,
			Score:     score,
			Source:    types.SourceContentBased,
		})
	}

	sortCandidates(cands)
	return capCandidates(cands, opts.limit()), nil
}
