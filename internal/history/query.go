// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/getids/pkg/types"
)

// ListOptions filters and limits a run listing.
type ListOptions struct {
	// Source restricts the listing to runs over this input.
	Source string

	// ElementID restricts the listing to runs that collected this id.
	ElementID string

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

// Run is a recorded collection.
type Run struct {
	types.Collection `yaml:",inline"`

	ID int64 `json:"run_id" yaml:"run_id"`
}

// List returns recorded runs, newest first, with their ids.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT r.id, r.source, r.selector, r.matched, r.missing, r.duplicates, r.collected_at FROM runs r WHERE 1=1`)
	if opts.Source != "" {
		qb.WriteString(` AND r.source = ?`)
		args = append(args, opts.Source)
	}
	if opts.ElementID != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM run_ids i WHERE i.run_id = r.id AND i.element_id = ?)`)
		args = append(args, opts.ElementID)
	}
	qb.WriteString(` ORDER BY r.id DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		ids, err := s.runIDs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].IDs = ids
	}
	return runs, nil
}

// Get returns one run by ID, or an error wrapping ErrRunNotFound.
func (s *Store) Get(ctx context.Context, runID int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, selector, matched, missing, duplicates, collected_at FROM runs WHERE id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, err
	}

	r.IDs, err = s.runIDs(ctx, runID)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

func (s *Store) runIDs(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT element_id FROM run_ids WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying ids for run %d: %w", runID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r           Run
		collectedAt string
	)
	if err := sc.Scan(&r.ID, &r.Source, &r.Selector, &r.Matched, &r.Missing, &r.Duplicates, &collectedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, collectedAt); err == nil {
		r.CollectedAt = t
	}
	return r, nil
}
