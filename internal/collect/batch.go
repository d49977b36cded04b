// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/getids/internal/document"
	"github.com/pdiddy/getids/internal/logger"
	"github.com/pdiddy/getids/pkg/types"
)

// Opener opens an input document for reading.
type Opener interface {
	Open(ctx context.Context, input string) (io.ReadCloser, error)
}

// Recorder persists a finished collection and returns its run ID.
type Recorder interface {
	Record(ctx context.Context, c types.Collection) (int64, error)
}

// BatchResult holds the outcome of collecting from several inputs.
type BatchResult struct {
	Collected   int
	Failed      int
	Collections []types.Collection
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Collected + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// IDs returns the ids of every collection in input order.
func (r BatchResult) IDs() []string {
	ids := []string{}
	for _, c := range r.Collections {
		ids = append(ids, c.IDs...)
	}
	return ids
}

// FromInput reads one input, queries it with cfg's class or selector, and
// collects the ids of the matched elements.
func FromInput(ctx context.Context, opener Opener, input string, cfg types.CollectConfig) (types.Collection, error) {
	rc, err := opener.Open(ctx, input)
	if err != nil {
		return types.Collection{}, err
	}
	defer rc.Close()

	doc, err := document.Parse(rc)
	if err != nil {
		return types.Collection{}, err
	}

	elements, applied, err := doc.Query(cfg.Class, cfg.Selector)
	if err != nil {
		return types.Collection{}, err
	}

	ids, tally := Scan(elements, Options{Unique: cfg.Unique, TrimSpace: cfg.TrimSpace})
	return types.Collection{
		Source:      input,
		Selector:    applied,
		Matched:     len(elements),
		Missing:     tally.Missing,
		Duplicates:  tally.Duplicates,
		IDs:         ids,
		CollectedAt: time.Now().UTC(),
	}, nil
}

// Batch collects from each input in turn and emits each id list to w. It
// continues after individual failures and writes per-input status lines and
// a summary to status. When rec is non-nil every successful collection is
// recorded; a recording failure is a warning, not a failed input.
func Batch(ctx context.Context, opener Opener, inputs []string, cfg types.CollectConfig, w, status io.Writer, rec Recorder) BatchResult {
	var result BatchResult
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(status, "failed:  %s (%v)\n", input, err)
			result.Failed++
			continue
		}

		c, err := FromInput(ctx, opener, input, cfg)
		if err != nil {
			fmt.Fprintf(status, "failed:  %s (%v)\n", input, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(status, "%s: %d matched %s, %d id(s), %d without id",
			c.Source, c.Matched, c.Selector, len(c.IDs), c.Missing)
		if c.Duplicates > 0 {
			fmt.Fprintf(status, ", %d duplicate(s) dropped", c.Duplicates)
		}
		fmt.Fprintln(status)

		if err := Emit(w, c.IDs, cfg.Format); err != nil {
			fmt.Fprintf(status, "failed:  %s (%v)\n", input, err)
			result.Failed++
			continue
		}

		if rec != nil {
			if runID, err := rec.Record(ctx, c); err != nil {
				fmt.Fprintf(status, "  warning: recording %s: %v\n", input, err)
			} else {
				logger.Debug("recorded %s as run %d", input, runID)
			}
		}

		result.Collected++
		result.Collections = append(result.Collections, c)
	}

	if len(inputs) > 1 {
		fmt.Fprintf(status, "\nBatch summary: %d collected, %d failed (total: %d)\n",
			result.Collected, result.Failed, result.Total())
	}
	return result
}

// BatchError summarises failed inputs as an error, or returns nil.
func BatchError(r BatchResult) error {
	if !r.HasFailures() {
		return nil
	}
	return fmt.Errorf("%d input(s) failed", r.Failed)
}
