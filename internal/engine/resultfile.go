// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recommend-engine/pkg/types"
)

// RunFile is the on-disk representation of one recommendation run. An
// operator can save a run to a file and inspect or replay it later
// without recomputing.
type RunFile struct {
	Params  RunParams          `yaml:"params"`
	Config  types.EngineConfig `yaml:"config"`
	Results []Result           `yaml:"results"`
	Summary RunSummary         `yaml:"summary"`
}

// RunParams stores the request parameters in a serializable form.
type RunParams struct {
	Strategy      string   `yaml:"strategy"`
	UserID        string   `yaml:"user_id,omitempty"`
	SeedItemID    string   `yaml:"seed_item_id,omitempty"`
	Limit         int      `yaml:"limit"`
	Timeframe     string   `yaml:"timeframe,omitempty"`
	ExcludeIDs    []string `yaml:"exclude_ids,omitempty"`
	IncludeGenres []string `yaml:"include_genres,omitempty"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRunFile saves a recommendation run to a YAML file.
func WriteRunFile(path string, strategy Strategy, opts Options, cfg types.EngineConfig, results []Result) error {
	rf := RunFile{
		Params: RunParams{
			Strategy:      string(strategy),
			UserID:        opts.UserID,
			SeedItemID:    opts.SeedItemID,
			Limit:         opts.limit(),
			Timeframe:     string(opts.Timeframe),
			ExcludeIDs:    opts.ExcludeIDs,
			IncludeGenres: opts.IncludeGenres,
		},
		Config:  cfg,
		Results: results,
		Summary: RunSummary{
			Total:     len(results),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// ToOptions converts stored RunParams back into an Options struct.
func (p RunParams) ToOptions() Options {
	return Options{
		UserID:        p.UserID,
		SeedItemID:    p.SeedItemID,
		Limit:         p.Limit,
		Timeframe:     Timeframe(p.Timeframe),
		ExcludeIDs:    p.ExcludeIDs,
		IncludeGenres: p.IncludeGenres,
	}
}
