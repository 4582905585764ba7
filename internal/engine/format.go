// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// Result is a candidate joined with its full catalog record, the shape
// consumed by the API layer and the CLI output.
type Result struct {
	types.ContentItem `yaml:",inline"`

	// RecommendationType is the producing strategy's source label.
	RecommendationType types.SourceType `json:"recommendation_type" yaml:"recommendation_type"`

	// Score is the candidate's merged score.
	Score float64 `json:"score" yaml:"score"`
}

// Resolve joins candidates with their catalog records, preserving
// candidate order. Candidates whose items have vanished from the catalog
// are dropped rather than reported.
func Resolve(ctx context.Context, catalog Catalog, cands []types.RecommendationCandidate) ([]Result, error) {
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.ContentID
	}
	items, err := catalog.ItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving recommendations: %w", err)
	}

	byID := make(map[string]types.ContentItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	results := make([]Result, 0, len(cands))
	for _, c := range cands {
		item, ok := byID[c.ContentID]
		if !ok {
			continue
		}
		results = append(results, Result{
			ContentItem:        item,
			RecommendationType: c.Source,
			Score:              c.Score,
		})
	}
	return results, nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-5s  %-24s  %-7s  %s\n",
		"Rank", "Title", "Type", "Genres", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.ID
		}
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		genres := strings.Join(r.Genres, ",")
		if len(genres) > 24 {
			genres = genres[:21] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-40s  %-5s  %-24s  %-7.2f  %s\n",
			i+1, title, r.MediaType, genres, r.Score, r.RecommendationType)
	}

	fmt.Fprintf(w, "\n%d recommendations\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
