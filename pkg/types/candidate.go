// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceType labels which strategy produced a recommendation candidate.
// The label survives merging so clients can display provenance
// ("because you watched", "trending now").
type SourceType string

const (
	SourceCollaborative SourceType = "collaborative"
	SourceContentBased  SourceType = "content_based"
	SourceSimilar       SourceType = "similar"
	SourcePopular       SourceType = "popular"
	SourceDiscovery     SourceType = "discovery"
)

// sourcePriority orders sources for merge tie-breaking. Lower is stronger.
var sourcePriority = map[SourceType]int{
	SourceCollaborative: 0,
	SourceContentBased:  1,
	SourceSimilar:       2,
	SourceDiscovery:     3,
	SourcePopular:       4,
}

// Priority returns the tie-break rank of the source. Unknown sources rank
// last.
func (s SourceType) Priority() int {
	if p, ok := sourcePriority[s]; ok {
		return p
	}
	return len(sourcePriority)
}

// RecommendationCandidate is a scored catalog item produced by one of the
// scoring strategies. Candidates are ephemeral: they exist only for the
// current request and are never persisted.
type RecommendationCandidate struct {
	// ContentID identifies the recommended catalog item.
	ContentID string `json:"content_id" yaml:"content_id"`

	// Score is the strategy-assigned score, always >= 0. Scales differ
	// per strategy; scores are only comparable after merging because the
	// merger keeps per-item maxima rather than summing across strategies.
	Score float64 `json:"score" yaml:"score"`

	// Source identifies the producing strategy.
	Source SourceType `json:"source" yaml:"source"`
}
