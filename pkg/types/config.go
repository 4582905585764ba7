// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EngineConfig holds the scoring tunables shared by all strategies.
type EngineConfig struct {
	// SimilarityThreshold is the minimum Pearson coefficient for a peer
	// to count as similar (default 0.3).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// MinCommonRatings is the minimum number of co-rated items before a
	// peer similarity is computed (default 3).
	MinCommonRatings int `json:"min_common_ratings" yaml:"min_common_ratings"`

	// MaxPeers caps the similarity edge list (default 10).
	MaxPeers int `json:"max_peers" yaml:"max_peers"`

	// FavoriteRating is the minimum rating for an item to count as a
	// favorite or a peer endorsement (default 4.0).
	FavoriteRating float64 `json:"favorite_rating" yaml:"favorite_rating"`

	// ColdStartThreshold is the rating count below which collaborative
	// scoring delegates to popularity (default 3).
	ColdStartThreshold int `json:"cold_start_threshold" yaml:"cold_start_threshold"`

	// CandidateMultiplier bounds candidate pool fetches at
	// limit × multiplier to avoid unbounded scans (default 4).
	CandidateMultiplier int `json:"candidate_multiplier" yaml:"candidate_multiplier"`

	// GenreScoreCap, DirectorScoreCap, and ActorScoreCap bound the
	// per-class contributions of the content-attribute scorer. They
	// mirror the item-similarity scale (50/30/20).
	GenreScoreCap    float64 `json:"genre_score_cap" yaml:"genre_score_cap"`
	DirectorScoreCap float64 `json:"director_score_cap" yaml:"director_score_cap"`
	ActorScoreCap    float64 `json:"actor_score_cap" yaml:"actor_score_cap"`

	// MinSimilarScore is the minimum item-similarity score, on the 0–100
	// scale, for a candidate to be returned (default 10).
	MinSimilarScore float64 `json:"min_similar_score" yaml:"min_similar_score"`

	// DiscoveryRating is the minimum average rating for discovery
	// candidates (default 4.0).
	DiscoveryRating float64 `json:"discovery_rating" yaml:"discovery_rating"`

	// TopGenreCount is how many preferred genres are held out of
	// discovery (default 5).
	TopGenreCount int `json:"top_genre_count" yaml:"top_genre_count"`
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
func (c EngineConfig) ApplyDefaults() EngineConfig {
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = 0.3
	}
	if c.MinCommonRatings <= 0 {
		c.MinCommonRatings = 3
	}
	if c.MaxPeers <= 0 {
		c.MaxPeers = 10
	}
	if c.FavoriteRating == 0 {
		c.FavoriteRating = 4.0
	}
	if c.ColdStartThreshold <= 0 {
		c.ColdStartThreshold = 3
	}
	if c.CandidateMultiplier <= 0 {
		c.CandidateMultiplier = 4
	}
	if c.GenreScoreCap == 0 {
		c.GenreScoreCap = 50
	}
	if c.DirectorScoreCap == 0 {
		c.DirectorScoreCap = 30
	}
	if c.ActorScoreCap == 0 {
		c.ActorScoreCap = 20
	}
	if c.MinSimilarScore == 0 {
		c.MinSimilarScore = 10
	}
	if c.DiscoveryRating == 0 {
		c.DiscoveryRating = 4.0
	}
	if c.TopGenreCount <= 0 {
		c.TopGenreCount = 5
	}
	return c
}

// StoreConfig holds settings for the SQLite catalog and interaction store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains fixtures/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServiceConfig groups all stage configurations.
type ServiceConfig struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
