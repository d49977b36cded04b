// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the recorded runs to <dir>/export.yaml and returns the
// path written. It supports the same filters as List.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	runs, err := s.exportRuns(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(runs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the recorded runs to <dir>/export.json and returns the
// path written.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	runs, err := s.exportRuns(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	opts.MaxResults = exportLimit
	runs, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}
