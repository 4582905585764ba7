// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

const (
	catalogSuffix      = "-catalog.yaml"
	interactionsSuffix = "-interactions.yaml"
)

// CatalogFile is the on-disk form of a catalog fixture.
type CatalogFile struct {
	Items []types.ContentItem `yaml:"items"`
}

// InteractionFile is the on-disk form of an interaction log fixture.
type InteractionFile struct {
	Interactions []types.InteractionRecord `yaml:"interactions"`
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads catalog and interaction YAML files from dataDir/fixtures/
// and populates the database. Unchanged files are skipped on subsequent
// runs; changed files replace their previous rows.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := filepath.Join(s.dataDir, fixturesDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading fixtures directory %s: %w", dir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		isCatalog := strings.HasSuffix(name, catalogSuffix)
		isInteractions := strings.HasSuffix(name, interactionsSuffix)
		if entry.IsDir() || (!isCatalog && !isInteractions) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		// Skip files unchanged since the last ingest.
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE file_name = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var count int
		if isCatalog {
			count, err = s.ingestCatalog(ctx, data)
		} else {
			count, err = s.ingestInteractions(ctx, name, data, isUpdate)
		}
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.markIngested(ctx, name, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", name, count)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d records)\n", name, count)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestCatalog(ctx context.Context, data []byte) (int, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return 0, fmt.Errorf("parse error: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (id, media_type, title, genres, directors, actors, average_rating, release_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			media_type=excluded.media_type, title=excluded.title,
			genres=excluded.genres, directors=excluded.directors,
			actors=excluded.actors, average_rating=excluded.average_rating,
			release_date=excluded.release_date`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range cf.Items {
		genresJSON, _ := json.Marshal(item.Genres)
		directorsJSON, _ := json.Marshal(item.Directors)
		actorsJSON, _ := json.Marshal(item.Actors)
		releaseDate := ""
		if !item.ReleaseDate.IsZero() {
			releaseDate = item.ReleaseDate.Format(time.RFC3339)
		}
		_, err := stmt.ExecContext(ctx,
			item.ID, string(item.MediaType), item.Title,
			string(genresJSON), string(directorsJSON), string(actorsJSON),
			item.AverageRating, releaseDate,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting item %s: %w", item.ID, err)
		}
	}

	return len(cf.Items), tx.Commit()
}

func (s *Store) ingestInteractions(ctx context.Context, fileName string, data []byte, isUpdate bool) (int, error) {
	var inf InteractionFile
	if err := yaml.Unmarshal(data, &inf); err != nil {
		return 0, fmt.Errorf("parse error: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The log is append-only from the engine's perspective, but a
	// re-ingested fixture replaces its own previous rows.
	if isUpdate {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM interactions WHERE source_file = ?`, fileName); err != nil {
			return 0, fmt.Errorf("deleting old interactions: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO interactions (user_id, content_id, kind, value, status, timestamp, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range inf.Interactions {
		_, err := stmt.ExecContext(ctx,
			r.UserID, r.ContentID, string(r.Kind), r.Value, string(r.Status),
			r.Timestamp.UTC().Format(time.RFC3339), fileName,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting interaction for %s: %w", r.UserID, err)
		}
	}

	return len(inf.Interactions), tx.Commit()
}

func (s *Store) markIngested(ctx context.Context, fileName, modTime string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_status (file_name, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file_name) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		fileName, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}
	return nil
}
