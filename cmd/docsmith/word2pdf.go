// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/internal/wordpdf"
	"github.com/pdiddy/docsmith/pkg/types"
)

var word2pdfCmd = &cobra.Command{
	Use:   "word2pdf [files...]",
	Short: "Convert Word documents to PDF",
	Long: `word2pdf converts .doc, .docx, and .rtf documents to PDF by driving an
installed word processor: Microsoft Word through its automation interface
where present, LibreOffice in headless mode otherwise.

With one file the PDF lands beside the input unless --output names it.
With several files all conversions share one word processor session and a
failure on one file never stops the rest; use --out-dir to collect the
PDFs in one place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
			cfg.WordPDF.Driver = driver
		}

		logger, closeLog, err := logging.New(types.KindWordPDF, cfg.Logging)
		if err != nil {
			return err
		}
		defer closeLog()

		o := wordpdf.New(cfg.WordPDF, logger)
		output, _ := cmd.Flags().GetString("output")
		outDir, _ := cmd.Flags().GetString("out-dir")

		if len(args) == 1 && outDir == "" {
			res := o.Convert(cmd.Context(), types.Request{Input: args[0], Output: output})
			recordHistory(cfg, logger, types.KindWordPDF, res)
			if !res.OK() {
				return res.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			return nil
		}

		if output != "" {
			return fmt.Errorf("--output names a single file; use --out-dir for batch runs")
		}

		batch, err := o.ConvertBatch(cmd.Context(), args, outDir, nil)
		if err != nil {
			return err
		}
		recordHistory(cfg, logger, types.KindWordPDF, batch.Results...)
		if batch.HasFailures() {
			return fmt.Errorf("%d of %d conversions failed", batch.Failed, batch.Total())
		}
		return nil
	},
}

func init() {
	word2pdfCmd.Flags().StringP("output", "o", "", "output PDF path (single file only)")
	word2pdfCmd.Flags().String("out-dir", "", "directory for batch output PDFs")
	word2pdfCmd.Flags().String("driver", "", "word processor driver: auto, word, or soffice")

	rootCmd.AddCommand(word2pdfCmd)
}
