// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversion ledger",
	Long: `history lists recent conversions from the ledger, newest first. --kind
filters to one pipeline, --summary prints per-pipeline counts instead,
and --export writes the full ledger to a YAML file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		if export, _ := cmd.Flags().GetString("export"); export != "" {
			if err := store.ExportYAML(cmd.Context(), export); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), export)
			return nil
		}

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			return printSummary(cmd, store)
		}
		return printRecent(cmd, store)
	},
}

func printRecent(cmd *cobra.Command, store *history.Store) error {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := store.Recent(cmd.Context(), types.Kind(kind), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no conversions recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tSTATUS\tINPUT\tOUTPUT")
	for _, e := range entries {
		detail := e.Output
		if e.Status == types.StatusFailed {
			detail = e.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Kind, e.Status, e.Input, detail)
	}
	return w.Flush()
}

func printSummary(cmd *cobra.Command, store *history.Store) error {
	summaries, err := store.Summarize(cmd.Context())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no conversions recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tTOTAL\tDONE\tFAILED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", s.Kind, s.Total, s.Done, s.Failed)
	}
	return w.Flush()
}

func init() {
	historyCmd.Flags().String("kind", "", "filter to one pipeline: word2pdf, md2word, or pdf2img")
	historyCmd.Flags().Int("limit", 20, "number of entries to show")
	historyCmd.Flags().Bool("summary", false, "print per-pipeline counts")
	historyCmd.Flags().String("export", "", "write the full ledger to this YAML file")

	rootCmd.AddCommand(historyCmd)
}
