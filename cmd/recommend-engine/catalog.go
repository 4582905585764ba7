// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recommend-engine/internal/engine"
	"github.com/pdiddy/recommend-engine/internal/store"
	"github.com/pdiddy/recommend-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the catalog and interaction store (ingest, export)",
	Long: `Catalog manages the local SQLite store the engine reads from. Use
subcommands to ingest catalog and interaction fixtures or to export the
catalog.`,
}

// --- ingest subcommand ---

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load catalog and interaction fixtures into the store",
	Long: `Ingest reads *-catalog.yaml and *-interactions.yaml files from
data/fixtures/ and populates the SQLite store. Unchanged files are
skipped on subsequent runs.`,
	RunE: runCatalogIngest,
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Ingest(context.Background(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to
data/index/catalog-export.yaml or catalog-export.json.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	mediaType, _ := cmd.Flags().GetString("media-type")
	genres, _ := cmd.Flags().GetStringSlice("genre")
	minRating, _ := cmd.Flags().GetFloat64("min-rating")

	filter := engine.ItemFilter{
		MediaType: types.MediaType(mediaType),
		Genres:    genres,
		MinRating: minRating,
	}

	st, err := store.NewStore(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	switch format {
	case "yaml", "":
		if err := st.ExportYAML(context.Background(), filter); err != nil {
			return err
		}
		fmt.Println("Exported to data/index/catalog-export.yaml")
	case "json":
		if err := st.ExportJSON(context.Background(), filter); err != nil {
			return err
		}
		fmt.Println("Exported to data/index/catalog-export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

func init() {
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("media-type", "", "filter by media type: movie or show")
	catalogExportCmd.Flags().StringSlice("genre", nil, "filter by genres")
	catalogExportCmd.Flags().Float64("min-rating", 0, "filter by minimum average rating")

	catalogCmd.AddCommand(catalogIngestCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
