// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/recommend-engine/internal/engine"
	"github.com/pdiddy/recommend-engine/pkg/types"
)

const itemColumns = `id, media_type, title, genres, directors, actors, average_rating, release_date`

// ItemByID returns the catalog item with the given ID, or nil when it
// does not exist.
func (s *Store) ItemByID(ctx context.Context, id string) (*types.ContentItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying item %s: %w", id, err)
	}
	return &item, nil
}

// ItemsByIDs returns the catalog items that exist among the given IDs.
func (s *Store) ItemsByIDs(ctx context.Context, ids []string) ([]types.ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// QueryItems returns up to limit items matching the filter, ordered by
// average rating descending then ID ascending. A non-positive limit uses
// the store default.
func (s *Store) QueryItems(ctx context.Context, filter engine.ItemFilter, limit int) ([]types.ContentItem, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + itemColumns + ` FROM items WHERE 1=1`)

	if filter.MediaType != "" {
		qb.WriteString(` AND media_type = ?`)
		args = append(args, string(filter.MediaType))
	}

	if filter.MinRating > 0 {
		qb.WriteString(` AND average_rating >= ?`)
		args = append(args, filter.MinRating)
	}

	if len(filter.Genres) > 0 {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(items.genres) WHERE value IN (` +
			placeholders(len(filter.Genres)) + `))`)
		for _, g := range filter.Genres {
			args = append(args, g)
		}
	}

	if len(filter.ExcludeIDs) > 0 {
		qb.WriteString(` AND id NOT IN (` + placeholders(len(filter.ExcludeIDs)) + `)`)
		for _, id := range filter.ExcludeIDs {
			args = append(args, id)
		}
	}

	qb.WriteString(` ORDER BY average_rating DESC, id ASC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Genres returns every genre present in the catalog, sorted.
func (s *Store) Genres(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT value FROM items, json_each(items.genres) ORDER BY value`)
	if err != nil {
		return nil, fmt.Errorf("querying genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for item scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (types.ContentItem, error) {
	var (
		item          types.ContentItem
		mediaType     string
		genresJSON    sql.NullString
		directorsJSON sql.NullString
		actorsJSON    sql.NullString
		releaseDate   sql.NullString
	)

	err := sc.Scan(&item.ID, &mediaType, &item.Title,
		&genresJSON, &directorsJSON, &actorsJSON,
		&item.AverageRating, &releaseDate)
	if err != nil {
		return item, err
	}

	item.MediaType = types.MediaType(mediaType)
	if genresJSON.Valid {
		json.Unmarshal([]byte(genresJSON.String), &item.Genres)
	}
	if directorsJSON.Valid {
		json.Unmarshal([]byte(directorsJSON.String), &item.Directors)
	}
	if actorsJSON.Valid {
		json.Unmarshal([]byte(actorsJSON.String), &item.Actors)
	}
	if releaseDate.Valid && releaseDate.String != "" {
		if t, err := time.Parse(time.RFC3339, releaseDate.String); err == nil {
			item.ReleaseDate = t
		}
	}
	return item, nil
}

func collectItems(rows *sql.Rows) ([]types.ContentItem, error) {
	var items []types.ContentItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
