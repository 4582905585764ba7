package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

func TestResolvePreservesOrderAndDropsVanished(t *testing.T) {
	catalog := newMockCatalog(
		movie("a", 4.0, "Action"), movie("b", 4.2, "Drama"),
	)
	cands := []types.RecommendationCandidate{
		cand("b", 9, types.SourceCollaborative),
		cand("ghost", 8, types.SourceCollaborative),
		cand("a", 7, types.SourceContentBased),
	}

	results, err := Resolve(context.Background(), catalog, cands)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "b" || results[1].ID != "a" {
		t.Errorf("order = [%s %s], want [b a]", results[0].ID, results[1].ID)
	}
	if results[0].Score != 9 || results[0].RecommendationType != types.SourceCollaborative {
		t.Errorf("result fields not carried over: %+v", results[0])
	}
}

func TestFormatTable(t *testing.T) {
	results := []Result{
		{
			ContentItem:        movie("a", 4.0, "Action", "Thriller"),
			RecommendationType: types.SourceCollaborative,
			Score:              1.5,
		},
	}

	var buf bytes.Buffer
	FormatTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Title a", "collaborative", "1.50", "1 recommendations"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No recommendations found.") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	results := []Result{
		{
			ContentItem:        movie("a", 4.0, "Action"),
			RecommendationType: types.SourcePopular,
			Score:              3,
		},
	}

	var buf bytes.Buffer
	if err := FormatJSON(results, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded []Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "a" || decoded[0].Score != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	opts := Options{
		UserID:        "alice",
		Limit:         5,
		Timeframe:     TimeframeMonth,
		IncludeGenres: []string{"Action"},
	}
	results := []Result{
		{
			ContentItem:        movie("a", 4.0, "Action"),
			RecommendationType: types.SourceCollaborative,
			Score:              1.5,
		},
	}
	cfg := types.EngineConfig{}.ApplyDefaults()

	if err := WriteRunFile(path, StrategyCollaborative, opts, cfg, results); err != nil {
		t.Fatalf("WriteRunFile: %v", err)
	}

	rf, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile: %v", err)
	}

	if rf.Params.Strategy != string(StrategyCollaborative) {
		t.Errorf("Strategy = %q", rf.Params.Strategy)
	}
	if rf.Summary.Total != 1 {
		t.Errorf("Total = %d, want 1", rf.Summary.Total)
	}
	if len(rf.Results) != 1 || rf.Results[0].ID != "a" {
		t.Errorf("Results = %+v", rf.Results)
	}
	if rf.Config.MaxPeers != cfg.MaxPeers {
		t.Errorf("Config.MaxPeers = %d, want %d", rf.Config.MaxPeers, cfg.MaxPeers)
	}

	back := rf.Params.ToOptions()
	if back.UserID != opts.UserID || back.Limit != opts.Limit ||
		back.Timeframe != opts.Timeframe {
		t.Errorf("ToOptions = %+v, want %+v", back, opts)
	}
}
