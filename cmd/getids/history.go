// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/getids/internal/collect"
	"github.com/pdiddy/getids/internal/history"
	"github.com/pdiddy/getids/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show, and export recorded collections",
	Long: `History reads the local SQLite database written by "collect --record".
Use subcommands to list recent runs, show the ids of one run, or export all
runs to YAML or JSON.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		if runs == nil {
			runs = []history.Run{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-6s  %-20s  %-40s  %-16s  %7s  %s\n",
		"Run", "Collected", "Source", "Selector", "Matched", "IDs")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range runs {
		src := r.Source
		if len(src) > 40 {
			src = "..." + src[len(src)-37:]
		}
		sel := r.Selector
		if len(sel) > 16 {
			sel = sel[:13] + "..."
		}
		fmt.Fprintf(w, "%-6d  %-20s  %-40s  %-16s  %7d  %d\n",
			r.ID, r.CollectedAt.Format("2006-01-02 15:04:05"), src, sel, r.Matched, len(r.IDs))
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Print the ids collected by one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	format, _ := cmd.Flags().GetString("format")
	if !types.OutputFormat(format).Valid() {
		return fmt.Errorf("unsupported format %q: use text, json, yaml, or lines", format)
	}

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), runID)
	if err != nil {
		return err
	}
	return collect.Emit(cmd.OutOrStdout(), run.IDs, types.OutputFormat(format))
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	Long: `Export writes every recorded run (or those matching --source / --id) to
export.yaml or export.json in the history directory.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) history.ListOptions {
	src, _ := cmd.Flags().GetString("source")
	id, _ := cmd.Flags().GetString("id")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.ListOptions{
		Source:     src,
		ElementID:  id,
		MaxResults: limit,
	}
}

func init() {
	historyListCmd.Flags().String("source", "", "only runs over this input")
	historyListCmd.Flags().String("id", "", "only runs that collected this id")
	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyShowCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml, or lines")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("source", "", "only runs over this input")
	historyExportCmd.Flags().String("id", "", "only runs that collected this id")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
