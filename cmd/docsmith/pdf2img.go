// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/internal/pdfimg"
	"github.com/pdiddy/docsmith/pkg/types"
)

var pdf2imgCmd = &cobra.Command{
	Use:   "pdf2img [file]",
	Short: "Render PDF pages to images",
	Long: `pdf2img renders the pages of a PDF to PNG or JPEG images through
Poppler's pdftoppm. Images land in a <name>_images directory beside the
input unless --output names another directory.

--pages limits the rendered interval: "3" for one page, "1-5" for a
range, "2-" from a page to the end, "-5" from the start to a page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("format") {
			cfg.PDFImages.Format, _ = cmd.Flags().GetString("format")
		}
		if cmd.Flags().Changed("dpi") {
			cfg.PDFImages.DPI, _ = cmd.Flags().GetInt("dpi")
		}
		if cmd.Flags().Changed("quality") {
			cfg.PDFImages.JPEGQuality, _ = cmd.Flags().GetInt("quality")
		}

		pagesSpec, _ := cmd.Flags().GetString("pages")
		pages, err := pdfimg.ParsePageRange(pagesSpec)
		if err != nil {
			return err
		}

		logger, closeLog, err := logging.New(types.KindPDFImages, cfg.Logging)
		if err != nil {
			return err
		}
		defer closeLog()

		output, _ := cmd.Flags().GetString("output")
		res := pdfimg.New(cfg.PDFImages, pages, logger).Convert(cmd.Context(), types.Request{
			Input:  args[0],
			Output: output,
		})
		recordHistory(cfg, logger, types.KindPDFImages, res)
		if !res.OK() {
			return res.Err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	},
}

func init() {
	pdf2imgCmd.Flags().StringP("output", "o", "", "output directory (default: <name>_images beside the input)")
	pdf2imgCmd.Flags().String("pages", "", "page range to render, e.g. 3, 1-5, 2-, -5")
	pdf2imgCmd.Flags().String("format", "png", "image format: png or jpg")
	pdf2imgCmd.Flags().Int("dpi", 144, "render resolution")
	pdf2imgCmd.Flags().Int("quality", 92, "JPEG quality (jpg only)")

	rootCmd.AddCommand(pdf2imgCmd)
}
