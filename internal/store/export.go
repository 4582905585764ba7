// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recommend-engine/internal/engine"
	"github.com/pdiddy/recommend-engine/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the catalog (optionally filtered) to
// data/index/catalog-export.yaml.
func (s *Store) ExportYAML(ctx context.Context, filter engine.ItemFilter) error {
	items, err := s.exportItems(ctx, filter)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "catalog-export.yaml")
	data, err := yaml.Marshal(CatalogFile{Items: items})
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog (optionally filtered) to
// data/index/catalog-export.json.
func (s *Store) ExportJSON(ctx context.Context, filter engine.ItemFilter) error {
	items, err := s.exportItems(ctx, filter)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "catalog-export.json")
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportItems(ctx context.Context, filter engine.ItemFilter) ([]types.ContentItem, error) {
	items, err := s.QueryItems(ctx, filter, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return items, nil
}
