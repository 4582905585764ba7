// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// SimilarityEdge links the requesting user to a peer with a correlated
// rating history. Edges are ephemeral: they are computed per request and
// never persisted.
type SimilarityEdge struct {
	PeerUserID  string
	Coefficient float64
}

// Pearson computes the Pearson correlation coefficient between two
// rating maps over their common keys. It returns 0 when either vector
// has zero variance over the intersection; degenerate input is not an
// error. The result is symmetric and bounded to [-1, 1].
func Pearson(r1, r2 map[string]float64) float64 {
	common := make([]string, 0, len(r1))
	for id := range r1 {
		if _, ok := r2[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return 0
	}

	var mean1, mean2 float64
	for _, id := range common {
		mean1 += r1[id]
		mean2 += r2[id]
	}
	mean1 /= float64(len(common))
	mean2 /= float64(len(common))

	var num, den1, den2 float64
	for _, id := range common {
		d1 := r1[id] - mean1
		d2 := r2[id] - mean2
		num += d1 * d2
		den1 += d1 * d1
		den2 += d2 * d2
	}

	den := math.Sqrt(den1 * den2)
	if den == 0 {
		return 0
	}
	return num / den
}

// similarPeers finds users whose rating history correlates with the
// target user's. A peer must share at least MinCommonRatings rated items
// and exceed SimilarityThreshold. The edge list is sorted by coefficient
// descending (peer ID ascending on ties) and capped to MaxPeers.
func (e *Engine) similarPeers(ctx context.Context, userID string, ratings map[string]float64) ([]SimilarityEdge, error) {
	itemIDs := make([]string, 0, len(ratings))
	for id := range ratings {
		itemIDs = append(itemIDs, id)
	}

	recs, err := e.log.InteractionsForItems(ctx, itemIDs, types.KindRate)
	if err != nil {
		return nil, fmt.Errorf("fetching peer ratings: %w", err)
	}

	// Peer rating maps over the target's items. Later records win so a
	// re-rated item contributes its current value.
	peerRatings := make(map[string]map[string]float64)
	for _, r := range recs {
		if r.UserID == userID || !r.IsRating() {
			continue
		}
		m, ok := peerRatings[r.UserID]
		if !ok {
			m = make(map[string]float64)
			peerRatings[r.UserID] = m
		}
		m[r.ContentID] = r.Value
	}

	var edges []SimilarityEdge
	for peer, pr := range peerRatings {
		if len(pr) < e.cfg.MinCommonRatings {
			continue
		}
		coef := Pearson(ratings, pr)
		if coef > e.cfg.SimilarityThreshold {
			edges = append(edges, SimilarityEdge{PeerUserID: peer, Coefficient: coef})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Coefficient != edges[j].Coefficient {
			return edges[i].Coefficient > edges[j].Coefficient
		}
		return edges[i].PeerUserID < edges[j].PeerUserID
	})
	if len(edges) > e.cfg.MaxPeers {
		edges = edges[:e.cfg.MaxPeers]
	}
	return edges, nil
}

// userRatings reduces a user's interaction log to a contentID → rating
// map. A re-rated item keeps its most recent value.
func (e *Engine) userRatings(ctx context.Context, userID string) (map[string]float64, error) {
	recs, err := e.log.UserInteractions(ctx, userID, types.KindRate)
	if err != nil {
		return nil, fmt.Errorf("fetching ratings for %s: %w", userID, err)
	}
	ratings := make(map[string]float64, len(recs))
	for _, r := range recs {
		if r.IsRating() {
			ratings[r.ContentID] = r.Value
		}
	}
	return ratings, nil
}
