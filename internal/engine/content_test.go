package engine

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

func TestPreferenceProfileFavoriteSelection(t *testing.T) {
	catalog := newMockCatalog(
		types.ContentItem{ID: "loved", MediaType: types.MediaMovie,
			Genres: []string{"Action"}, Directors: []string{"D1"}, Actors: []string{"A1"}},
		types.ContentItem{ID: "finished", MediaType: types.MediaMovie,
			Genres: []string{"Drama"}, Directors: []string{"D2"}},
		types.ContentItem{ID: "meh", MediaType: types.MediaMovie,
			Genres: []string{"Comedy"}, Directors: []string{"D3"}},
	)
	log := &mockLog{recs: []types.InteractionRecord{
		rate("alice", "loved", 4.5),
		completed("alice", "finished"),
		// Rated below the favorite threshold and never completed.
		rate("alice", "meh", 3.0),
	}}

	e := newTestEngine(catalog, log)
	profile, err := e.preferenceProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("preferenceProfile: %v", err)
	}

	if profile.GenreCounts["Action"] != 1 {
		t.Errorf("GenreCounts[Action] = %d, want 1", profile.GenreCounts["Action"])
	}
	if profile.GenreCounts["Drama"] != 1 {
		t.Errorf("GenreCounts[Drama] = %d, want 1", profile.GenreCounts["Drama"])
	}
	if _, ok := profile.GenreCounts["Comedy"]; ok {
		t.Error("sub-threshold rating contributed to the profile")
	}
	if profile.DirectorCounts["D1"] != 1 || profile.DirectorCounts["D2"] != 1 {
		t.Errorf("DirectorCounts = %v", profile.DirectorCounts)
	}
	if profile.ActorCounts["A1"] != 1 {
		t.Errorf("ActorCounts = %v", profile.ActorCounts)
	}
}

func TestPreferenceProfileStatusWeights(t *testing.T) {
	catalog := newMockCatalog(
		types.ContentItem{ID: "done", MediaType: types.MediaMovie, Genres: []string{"Action"}},
		types.ContentItem{ID: "pending", MediaType: types.MediaMovie, Genres: []string{"Drama"}},
		types.ContentItem{ID: "silent", MediaType: types.MediaMovie, Genres: []string{"Horror"}},
	)
	log := &mockLog{recs: []types.InteractionRecord{
		rate("alice", "done", 5),
		completed("alice", "done"),
		rate("alice", "pending", 5),
		// Completed but never rated: contributes at the favorite threshold.
		completed("alice", "silent"),
	}}

	e := newTestEngine(catalog, log)
	profile, err := e.preferenceProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("preferenceProfile: %v", err)
	}

	vec := profile.GenreVector()
	// Weights: Action 5×1.0, Drama 5×0.8, Horror 4×1.0; total 13.
	wantAction, wantDrama, wantHorror := 5.0/13, 4.0/13, 4.0/13
	if math.Abs(vec["Action"]-wantAction) > 1e-9 {
		t.Errorf("vec[Action] = %f, want %f", vec["Action"], wantAction)
	}
	if math.Abs(vec["Drama"]-wantDrama) > 1e-9 {
		t.Errorf("vec[Drama] = %f, want %f", vec["Drama"], wantDrama)
	}
	if math.Abs(vec["Horror"]-wantHorror) > 1e-9 {
		t.Errorf("vec[Horror] = %f, want %f", vec["Horror"], wantHorror)
	}

	var sum float64
	for _, w := range vec {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("vector sums to %f, want 1", sum)
	}
}

func TestTopGenresDeterministic(t *testing.T) {
	profile := PreferenceProfile{genreWeights: map[string]float64{
		"Drama": 10, "Action": 10, "Comedy": 5, "Horror": 2,
	}}

	got := profile.TopGenres(3)
	// Equal weights break ties by name.
	want := []string{"Action", "Drama", "Comedy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopGenres = %v, want %v", got, want)
	}
}

func TestScoreByAttributesCaps(t *testing.T) {
	profile := PreferenceProfile{
		GenreCounts:    map[string]int{"Action": 20},
		DirectorCounts: map[string]int{"D1": 20},
		ActorCounts:    map[string]int{"A1": 20},
	}
	item := types.ContentItem{
		Genres:    []string{"Action"},
		Directors: []string{"D1"},
		Actors:    []string{"A1"},
	}

	e := newTestEngine(newMockCatalog(), &mockLog{})
	score, genreMatches := e.scoreByAttributes(profile, item)

	// Uncapped this would be 20×8 + 20×15 + 20×6; each class caps at its
	// configured ceiling instead.
	want := e.cfg.GenreScoreCap + e.cfg.DirectorScoreCap + e.cfg.ActorScoreCap
	if score != want {
		t.Errorf("score = %f, want %f", score, want)
	}
	if genreMatches != 1 {
		t.Errorf("genreMatches = %d, want 1", genreMatches)
	}
}

func TestScoreByAttributesWeights(t *testing.T) {
	profile := PreferenceProfile{
		GenreCounts:    map[string]int{"Action": 2, "Drama": 1},
		DirectorCounts: map[string]int{"D1": 1},
		ActorCounts:    map[string]int{"A1": 3},
	}
	item := types.ContentItem{
		Genres:    []string{"Action", "Drama", "Horror"},
		Directors: []string{"D1"},
		Actors:    []string{"A1", "A2"},
	}

	e := newTestEngine(newMockCatalog(), &mockLog{})
	score, genreMatches := e.scoreByAttributes(profile, item)

	// Genres: 2×8 + 1×8 = 24. Director: 1×15. Actors: 3×6 = 18.
	if want := 24.0 + 15 + 18; score != want {
		t.Errorf("score = %f, want %f", score, want)
	}
	if genreMatches != 2 {
		t.Errorf("genreMatches = %d, want 2", genreMatches)
	}
}

func TestContentBasedExcludesZeroGenreOverlap(t *testing.T) {
	catalog := newMockCatalog(
		types.ContentItem{ID: "fav", MediaType: types.MediaMovie,
			Genres: []string{"Action"}, Directors: []string{"D1"}, AverageRating: 4.0},
		types.ContentItem{ID: "overlap", MediaType: types.MediaMovie,
			Genres: []string{"Action"}, AverageRating: 4.0},
		// Shares a director but no genre; excluded when content-based runs
		// as the sole strategy.
		types.ContentItem{ID: "disjoint", MediaType: types.MediaMovie,
			Genres: []string{"Documentary"}, Directors: []string{"D1"}, AverageRating: 4.5},
	)
	log := &mockLog{recs: []types.InteractionRecord{rate("alice", "fav", 5)}}

	e := newTestEngine(catalog, log)
	cands, err := e.ContentBased(context.Background(), Options{UserID: "alice"})
	if err != nil {
		t.Fatalf("ContentBased: %v", err)
	}

	if got := candidateIDs(cands); !reflect.DeepEqual(got, []string{"overlap"}) {
		t.Errorf("cands = %v, want [overlap]", got)
	}
}

func TestContentBasedEmptyProfileFallsBackToPopular(t *testing.T) {
	catalog := newMockCatalog(
		movie("a", 4.0, "Action"), movie("b", 4.2, "Drama"),
	)
	log := &mockLog{recs: []types.InteractionRecord{
		// Views only: no favorites qualify.
		{UserID: "alice", ContentID: "a", Kind: types.KindView, Timestamp: baseTime},
		completed("u1", "b"), completed("u2", "b"),
	}}

	e := newTestEngine(catalog, log)
	opts := Options{UserID: "alice"}

	content, err := e.ContentBased(context.Background(), opts)
	if err != nil {
		t.Fatalf("ContentBased: %v", err)
	}
	popular, err := e.Popular(context.Background(), opts)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if !reflect.DeepEqual(content, popular) {
		t.Errorf("empty-profile output differs from popular:\ncontent: %v\npopular: %v", content, popular)
	}
}
