// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for recommend-engine:
// catalog items, interaction records, recommendation candidates, and
// stage configuration.
package types

import "time"

// MediaType distinguishes catalog item categories.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaShow  MediaType = "show"
)

// ContentItem is an immutable snapshot of a catalog entry for the
// duration of a request. The catalog collaborator owns the record;
// the engine only reads it.
type ContentItem struct {
	// ID is the catalog identifier (e.g. "tt0133093").
	ID string `json:"id" yaml:"id"`

	// MediaType is movie or show.
	MediaType MediaType `json:"media_type" yaml:"media_type"`

	// Title is the display title.
	Title string `json:"title" yaml:"title"`

	// Genres lists genre identifiers attached to the item.
	Genres []string `json:"genres" yaml:"genres"`

	// Directors lists director identifiers.
	Directors []string `json:"directors,omitempty" yaml:"directors,omitempty"`

	// Actors lists actor identifiers in billing order.
	Actors []string `json:"actors,omitempty" yaml:"actors,omitempty"`

	// AverageRating is the catalog-wide mean rating on the 1.0–5.0 scale.
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`

	// ReleaseDate is the first release or air date.
	ReleaseDate time.Time `json:"release_date" yaml:"release_date"`
}

// HasGenre reports whether the item carries the given genre.
func (c ContentItem) HasGenre(genre string) bool {
	for _, g := range c.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
