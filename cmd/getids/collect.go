// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/getids/internal/collect"
	"github.com/pdiddy/getids/internal/document"
	"github.com/pdiddy/getids/internal/history"
	"github.com/pdiddy/getids/internal/source"
)

var collectCmd = &cobra.Command{
	Use:   "collect [inputs...]",
	Short: "Print the ids of elements carrying a class",
	Long: `Collect parses each input as HTML, selects the elements carrying the
class given by --class (default "card"), and prints the list of their id
attributes in document order. Elements without an id or with an empty id are
skipped.

Inputs may be file paths, glob patterns ("pages/*.html"), http(s) URLs, or
"-" for stdin. With no inputs, stdin is read. Use --selector to query with an
arbitrary CSS selector instead of a class.`,
	Example: `  getids collect page.html
  getids collect --class program "saved/*.html" --format lines
  curl -s https://example.com | getids collect --record`,
	RunE: runCollect,
}

func init() {
	f := collectCmd.Flags()
	f.StringP("class", "c", "", `class name to select (default "card")`)
	f.StringP("selector", "s", "", "CSS selector to use instead of --class")
	f.StringP("format", "f", "", "output format: text, json, yaml, or lines (default text)")
	f.Bool("unique", false, "drop repeated ids, keeping the first")
	f.Bool("trim", false, "trim whitespace around ids before the empty check")
	f.Bool("record", false, "record each collection in the history database")
	f.Duration("timeout", 0, "HTTP request timeout for URL inputs (default 30s)")
	f.String("user-agent", "", "User-Agent header for URL inputs")
	f.Int("max-retries", 0, "retries on HTTP 429/503 (default 5)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := collectConfig()
	if err != nil {
		return err
	}
	if cfg.Selector == "" {
		if err := document.ValidateClass(cfg.Class); err != nil {
			return fmt.Errorf("--class: %w", err)
		}
	}

	if len(args) == 0 {
		args = []string{source.Stdin}
	}
	inputs, err := source.Expand(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var rec collect.Recorder
	if cfg.Record {
		store, err := history.NewStore(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	client := &http.Client{Timeout: cfg.Timeout}
	opener := source.NewOpener(client, cfg.HTTPConfig, cmd.InOrStdin())

	result := collect.Batch(ctx, opener, inputs, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), rec)
	return collect.BatchError(result)
}
