// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/recommend-engine/internal/engine"
	"github.com/pdiddy/recommend-engine/pkg/types"
)

const interactionColumns = `user_id, content_id, kind, value, status, timestamp`

// UserInteractions returns a user's interactions, oldest first,
// optionally filtered to the given kinds.
func (s *Store) UserInteractions(ctx context.Context, userID string, kinds ...types.InteractionKind) ([]types.InteractionRecord, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + interactionColumns + ` FROM interactions WHERE user_id = ?`)
	args = append(args, userID)
	appendKindFilter(&qb, &args, kinds)
	qb.WriteString(` ORDER BY timestamp ASC, rowid ASC`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying interactions for %s: %w", userID, err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// InteractionsForItems returns all interactions against the given items,
// oldest first, optionally filtered to the given kinds.
func (s *Store) InteractionsForItems(ctx context.Context, itemIDs []string, kinds ...types.InteractionKind) ([]types.InteractionRecord, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + interactionColumns + ` FROM interactions WHERE content_id IN (` +
		placeholders(len(itemIDs)) + `)`)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	appendKindFilter(&qb, &args, kinds)
	qb.WriteString(` ORDER BY timestamp ASC, rowid ASC`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying item interactions: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// CountCompletedSince counts completed-status interactions for one item
// since the given time. A zero since counts the full log.
func (s *Store) CountCompletedSince(ctx context.Context, itemID string, since time.Time) (int, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT COUNT(*) FROM interactions
		WHERE content_id = ? AND kind = ? AND status = ?`)
	args = append(args, itemID, string(types.KindListStatus), string(types.StatusCompleted))
	if !since.IsZero() {
		qb.WriteString(` AND timestamp >= ?`)
		args = append(args, since.UTC().Format(time.RFC3339))
	}

	var count int
	if err := s.db.QueryRowContext(ctx, qb.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting completions for %s: %w", itemID, err)
	}
	return count, nil
}

// TopCompleted returns items ranked by completed-status count since the
// given time, capped to limit. Ties break by content ID for reproducible
// output.
func (s *Store) TopCompleted(ctx context.Context, since time.Time, limit int) ([]engine.ItemCount, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT content_id, COUNT(*) AS n FROM interactions
		WHERE kind = ? AND status = ?`)
	args = append(args, string(types.KindListStatus), string(types.StatusCompleted))
	if !since.IsZero() {
		qb.WriteString(` AND timestamp >= ?`)
		args = append(args, since.UTC().Format(time.RFC3339))
	}
	qb.WriteString(` GROUP BY content_id ORDER BY n DESC, content_id ASC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("counting completions: %w", err)
	}
	defer rows.Close()

	var counts []engine.ItemCount
	for rows.Next() {
		var c engine.ItemCount
		if err := rows.Scan(&c.ContentID, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning completion count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func appendKindFilter(qb *strings.Builder, args *[]any, kinds []types.InteractionKind) {
	if len(kinds) == 0 {
		return
	}
	qb.WriteString(` AND kind IN (` + placeholders(len(kinds)) + `)`)
	for _, k := range kinds {
		*args = append(*args, string(k))
	}
}

func collectInteractions(rows *sql.Rows) ([]types.InteractionRecord, error) {
	var recs []types.InteractionRecord
	for rows.Next() {
		var (
			r      types.InteractionRecord
			kind   string
			value  sql.NullFloat64
			status sql.NullString
			ts     string
		)
		if err := rows.Scan(&r.UserID, &r.ContentID, &kind, &value, &status, &ts); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		r.Kind = types.InteractionKind(kind)
		if value.Valid {
			r.Value = value.Float64
		}
		if status.Valid {
			r.Status = types.WatchStatus(status.String)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Timestamp = t
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
