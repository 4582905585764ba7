package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

func TestSimilarityScore(t *testing.T) {
	tests := []struct {
		name string
		seed types.ContentItem
		cand types.ContentItem
		want float64
	}{
		{
			name: "full genre overlap, shared director, two shared actors",
			seed: types.ContentItem{
				Genres:    []string{"Action", "Thriller"},
				Directors: []string{"Kathryn Bigelow"},
				Actors:    []string{"A", "B", "C"},
			},
			cand: types.ContentItem{
				Genres:    []string{"Action", "Thriller", "Drama"},
				Directors: []string{"Kathryn Bigelow"},
				Actors:    []string{"A", "B", "D"},
			},
			// 50 + 30 + 2/3×20 = 93.33
			want: 50 + 30 + 2.0/3.0*20,
		},
		{
			name: "half genre overlap only",
			seed: types.ContentItem{Genres: []string{"Action", "Comedy"}},
			cand: types.ContentItem{Genres: []string{"Action", "Horror"}},
			want: 25,
		},
		{
			name: "actor score saturates at three shared",
			seed: types.ContentItem{Actors: []string{"A", "B", "C", "D", "E"}},
			cand: types.ContentItem{Actors: []string{"A", "B", "C", "D", "E"}},
			want: 20,
		},
		{
			name: "seed with no genres contributes zero genre score",
			seed: types.ContentItem{Directors: []string{"X"}},
			cand: types.ContentItem{Genres: []string{"Action"}, Directors: []string{"X"}},
			want: 30,
		},
		{
			name: "nothing shared",
			seed: types.ContentItem{Genres: []string{"Action"}, Directors: []string{"X"}, Actors: []string{"A"}},
			cand: types.ContentItem{Genres: []string{"Drama"}, Directors: []string{"Y"}, Actors: []string{"B"}},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityScore(tt.seed, tt.cand)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SimilarityScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSimilarMissingSeed(t *testing.T) {
	e := newTestEngine(newMockCatalog(), &mockLog{})

	_, err := e.Similar(context.Background(), Options{SeedItemID: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	_, err = e.Similar(context.Background(), Options{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty seed: err = %v, want ErrNotFound", err)
	}
}

func TestSimilarRestrictsMediaTypeAndExclusions(t *testing.T) {
	seed := types.ContentItem{
		ID: "seed", MediaType: types.MediaMovie,
		Genres: []string{"Action"}, Directors: []string{"X"},
	}
	sameType := types.ContentItem{
		ID: "match", MediaType: types.MediaMovie,
		Genres: []string{"Action"}, Directors: []string{"X"},
	}
	crossType := types.ContentItem{
		ID: "show", MediaType: types.MediaShow,
		Genres: []string{"Action"}, Directors: []string{"X"},
	}
	watched := types.ContentItem{
		ID: "watched", MediaType: types.MediaMovie,
		Genres: []string{"Action"}, Directors: []string{"X"},
	}

	catalog := newMockCatalog(seed, sameType, crossType, watched)
	log := &mockLog{recs: []types.InteractionRecord{
		{UserID: "alice", ContentID: "watched", Kind: types.KindView, Timestamp: baseTime},
	}}

	e := newTestEngine(catalog, log)
	cands, err := e.Similar(context.Background(), Options{UserID: "alice", SeedItemID: "seed"})
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}

	if len(cands) != 1 || cands[0].ContentID != "match" {
		t.Fatalf("cands = %v, want only [match]", candidateIDs(cands))
	}
	if cands[0].Source != types.SourceSimilar {
		t.Errorf("Source = %q", cands[0].Source)
	}
}

func TestSimilarRejectsBelowMinimumScore(t *testing.T) {
	seed := types.ContentItem{
		ID: "seed", MediaType: types.MediaMovie,
		Genres: []string{"Action", "Drama", "Comedy", "Horror", "Sci-Fi", "Romance"},
	}
	// Shares one of six genres: 1/6 × 50 = 8.33, below the default
	// minimum of 10.
	weak := types.ContentItem{
		ID: "weak", MediaType: types.MediaMovie, Genres: []string{"Action"},
	}
	strong := types.ContentItem{
		ID: "strong", MediaType: types.MediaMovie, Genres: []string{"Action", "Drama"},
	}

	catalog := newMockCatalog(seed, weak, strong)
	e := newTestEngine(catalog, &mockLog{})

	cands, err := e.Similar(context.Background(), Options{SeedItemID: "seed"})
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(cands) != 1 || cands[0].ContentID != "strong" {
		t.Errorf("cands = %v, want only [strong]", candidateIDs(cands))
	}
}
