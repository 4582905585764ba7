// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// InteractionKind identifies the action a user took against a catalog item.
type InteractionKind string

const (
	KindView       InteractionKind = "view"
	KindRate       InteractionKind = "rate"
	KindListStatus InteractionKind = "list_status"
	KindComment    InteractionKind = "comment"
)

// WatchStatus is the list state attached to list_status interactions.
type WatchStatus string

const (
	StatusWatching    WatchStatus = "watching"
	StatusCompleted   WatchStatus = "completed"
	StatusPlanToWatch WatchStatus = "plan_to_watch"
	StatusDropped     WatchStatus = "dropped"
)

// InteractionRecord is one append-only entry in the interaction log.
// The engine only reads records; the interaction-writing layer produces
// them.
type InteractionRecord struct {
	// UserID identifies the acting user.
	UserID string `json:"user_id" yaml:"user_id"`

	// ContentID identifies the catalog item acted on.
	ContentID string `json:"content_id" yaml:"content_id"`

	// Kind is the interaction type: view, rate, list_status, or comment.
	Kind InteractionKind `json:"kind" yaml:"kind"`

	// Value is the rating on the 1.0–5.0 scale. Only set for rate
	// interactions.
	Value float64 `json:"value,omitempty" yaml:"value,omitempty"`

	// Status is the list state. Only set for list_status interactions.
	Status WatchStatus `json:"status,omitempty" yaml:"status,omitempty"`

	// Timestamp is when the interaction was recorded.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// IsRating reports whether the record carries a usable rating value.
func (r InteractionRecord) IsRating() bool {
	return r.Kind == KindRate && r.Value >= 1.0 && r.Value <= 5.0
}

// IsCompleted reports whether the record marks the item completed.
func (r InteractionRecord) IsCompleted() bool {
	return r.Kind == KindListStatus && r.Status == StatusCompleted
}
