// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/mdword"
	"github.com/pdiddy/docsmith/internal/wordpdf"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which conversion engines are usable",
	Long: `doctor probes every conversion engine and reports what each pipeline
would use: the word processor driver for word2pdf, the Pandoc binary for
md2word, and pdftoppm for pdf2img. The probe never installs anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if driver, err := wordpdf.DetectDriver(cfg.WordPDF); err != nil {
			fmt.Fprintf(out, "✗ word2pdf: %v\n", err)
		} else {
			fmt.Fprintf(out, "✓ word2pdf: %s driver\n", driver.Name())
		}

		// Probe only; a missing Pandoc must not trigger the auto-install.
		mdCfg := cfg.MarkdownWord
		mdCfg.AutoInstall = false
		if bin, err := mdword.NewInstaller(mdCfg).Resolve(cmd.Context()); err != nil {
			fmt.Fprintf(out, "✗ md2word: %v\n", err)
		} else {
			detail := bin
			if v, err := mdword.NewPandocEngine(bin, mdCfg).Version(cmd.Context()); err == nil {
				detail = fmt.Sprintf("%s (%s)", v, bin)
			}
			fmt.Fprintf(out, "✓ md2word: %s\n", detail)
		}

		if bin, err := exec.LookPath("pdftoppm"); err != nil {
			fmt.Fprintln(out, "✗ pdf2img: pdftoppm not found (install Poppler)")
		} else {
			fmt.Fprintf(out, "✓ pdf2img: %s\n", bin)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
