package engine

import (
	"context"
	"math"
	"testing"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		r1   map[string]float64
		r2   map[string]float64
		want float64
	}{
		{
			name: "identical ratings",
			r1:   map[string]float64{"a": 5, "b": 3, "c": 1},
			r2:   map[string]float64{"a": 5, "b": 3, "c": 1},
			want: 1,
		},
		{
			name: "perfect inverse",
			r1:   map[string]float64{"a": 5, "b": 3, "c": 1},
			r2:   map[string]float64{"a": 1, "b": 3, "c": 5},
			want: -1,
		},
		{
			name: "constant first vector has zero variance",
			r1:   map[string]float64{"a": 1, "b": 1, "c": 1},
			r2:   map[string]float64{"a": 2, "b": 2, "c": 2},
			want: 0,
		},
		{
			name: "constant second vector has zero variance",
			r1:   map[string]float64{"a": 1, "b": 4, "c": 2},
			r2:   map[string]float64{"a": 3, "b": 3, "c": 3},
			want: 0,
		},
		{
			name: "no common items",
			r1:   map[string]float64{"a": 5},
			r2:   map[string]float64{"b": 5},
			want: 0,
		},
		{
			name: "linear shift preserves correlation",
			r1:   map[string]float64{"a": 1, "b": 2, "c": 3},
			r2:   map[string]float64{"a": 3, "b": 4, "c": 5},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.r1, tt.r2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Pearson = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPearsonSymmetry(t *testing.T) {
	r1 := map[string]float64{"a": 5, "b": 2.5, "c": 4, "d": 1}
	r2 := map[string]float64{"a": 4, "b": 3, "c": 5, "e": 2}

	ab := Pearson(r1, r2)
	ba := Pearson(r2, r1)
	if ab != ba {
		t.Errorf("Pearson(r1, r2) = %f but Pearson(r2, r1) = %f", ab, ba)
	}
	if ab < -1 || ab > 1 {
		t.Errorf("Pearson = %f outside [-1, 1]", ab)
	}
}

func TestSimilarPeersRejectsThinOverlap(t *testing.T) {
	catalog := newMockCatalog(
		movie("a", 4.0, "Action"), movie("b", 4.2, "Drama"),
		movie("c", 3.9, "Comedy"),
	)
	log := &mockLog{recs: []types.InteractionRecord{
		rate("alice", "a", 5), rate("alice", "b", 4), rate("alice", "c", 3),
		// thin shares only two rated items with alice, even in perfect
		// agreement that is not enough evidence.
		rate("thin", "a", 5), rate("thin", "b", 4),
	}}

	e := newTestEngine(catalog, log)
	ratings, err := e.userRatings(context.Background(), "alice")
	if err != nil {
		t.Fatalf("userRatings: %v", err)
	}
	peers, err := e.similarPeers(context.Background(), "alice", ratings)
	if err != nil {
		t.Fatalf("similarPeers: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("peers = %v, want none", peers)
	}
}

func TestSimilarPeersOrderedAndCapped(t *testing.T) {
	catalog := newMockCatalog(
		movie("a", 4.0, "Action"), movie("b", 4.2, "Drama"),
		movie("c", 3.9, "Comedy"), movie("d", 4.5, "Action"),
	)
	recs := []types.InteractionRecord{
		rate("alice", "a", 5), rate("alice", "b", 4),
		rate("alice", "c", 3), rate("alice", "d", 2),
		// strong tracks alice exactly; loose mostly agrees.
		rate("strong", "a", 5), rate("strong", "b", 4),
		rate("strong", "c", 3), rate("strong", "d", 2),
		rate("loose", "a", 5), rate("loose", "b", 3),
		rate("loose", "c", 4), rate("loose", "d", 2),
		// contrarian correlates negatively and must be dropped.
		rate("contrarian", "a", 2), rate("contrarian", "b", 3),
		rate("contrarian", "c", 4), rate("contrarian", "d", 5),
	}

	e := newTestEngine(catalog, &mockLog{recs: recs})
	ratings, err := e.userRatings(context.Background(), "alice")
	if err != nil {
		t.Fatalf("userRatings: %v", err)
	}
	peers, err := e.similarPeers(context.Background(), "alice", ratings)
	if err != nil {
		t.Fatalf("similarPeers: %v", err)
	}

	if len(peers) != 2 {
		t.Fatalf("len(peers) = %d (%v), want 2", len(peers), peers)
	}
	if peers[0].PeerUserID != "strong" || peers[1].PeerUserID != "loose" {
		t.Errorf("peer order = [%s %s], want [strong loose]",
			peers[0].PeerUserID, peers[1].PeerUserID)
	}
	if peers[0].Coefficient < peers[1].Coefficient {
		t.Error("peers not sorted by descending coefficient")
	}
	for _, p := range peers {
		if p.Coefficient <= e.cfg.SimilarityThreshold {
			t.Errorf("peer %s coefficient %f at or below threshold", p.PeerUserID, p.Coefficient)
		}
	}
}

func TestUserRatingsLatestWins(t *testing.T) {
	early := baseTime.AddDate(0, 0, -1)
	log := &mockLog{recs: []types.InteractionRecord{
		{UserID: "alice", ContentID: "a", Kind: types.KindRate, Value: 2, Timestamp: early},
		{UserID: "alice", ContentID: "a", Kind: types.KindRate, Value: 5, Timestamp: baseTime},
	}}

	e := newTestEngine(newMockCatalog(), log)
	ratings, err := e.userRatings(context.Background(), "alice")
	if err != nil {
		t.Fatalf("userRatings: %v", err)
	}
	if got := ratings["a"]; got != 5 {
		t.Errorf("ratings[a] = %f, want the later value 5", got)
	}
}
