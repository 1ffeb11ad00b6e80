// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/internal/tui"
	"github.com/pdiddy/docsmith/internal/wordpdf"
	"github.com/pdiddy/docsmith/pkg/types"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Interactive Word to PDF form",
	Long: `form opens an interactive terminal form for the Word to PDF pipeline.
Pick one or more input files (globs work), optionally an output path or
directory, and start the run; batch progress is shown per file. The form
follows the same conversion rules as the word2pdf subcommand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The form renders progress itself; the orchestrator's console
		// logging would corrupt the display.
		runner := &formRunner{
			orch: wordpdf.New(cfg.WordPDF, logging.Discard()),
			cfg:  cfg,
		}
		_, err = tea.NewProgram(tui.NewForm(runner)).Run()
		return err
	},
}

// formRunner adapts the Word to PDF orchestrator for the form and records
// every run in the conversion ledger.
type formRunner struct {
	orch *wordpdf.Orchestrator
	cfg  types.Config
}

func (r *formRunner) ConvertOne(ctx context.Context, req types.Request) types.Result {
	res := r.orch.Convert(ctx, req)
	recordHistory(r.cfg, logging.Discard(), types.KindWordPDF, res)
	return res
}

func (r *formRunner) ConvertMany(ctx context.Context, inputs []string, outDir string, onFile func(i, n int, res types.Result)) (types.BatchResult, error) {
	batch, err := r.orch.ConvertBatch(ctx, inputs, outDir, onFile)
	if err == nil {
		recordHistory(r.cfg, logging.Discard(), types.KindWordPDF, batch.Results...)
	}
	return batch, err
}

func init() {
	rootCmd.AddCommand(formCmd)
}
