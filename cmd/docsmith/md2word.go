// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/internal/mdword"
	"github.com/pdiddy/docsmith/pkg/types"
)

var md2wordCmd = &cobra.Command{
	Use:   "md2word [file]",
	Short: "Convert a Markdown file to a Word document",
	Long: `md2word converts a .md or .markdown file to .docx through Pandoc. When
Pandoc is not installed, a private copy is downloaded into the user data
directory on first use; --no-install disables that and fails instead.

The document gets a table of contents built from its headings unless
--no-toc is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if pandoc, _ := cmd.Flags().GetString("pandoc"); pandoc != "" {
			cfg.MarkdownWord.PandocPath = pandoc
		}
		if noInstall, _ := cmd.Flags().GetBool("no-install"); noInstall {
			cfg.MarkdownWord.AutoInstall = false
		}
		if noTOC, _ := cmd.Flags().GetBool("no-toc"); noTOC {
			cfg.MarkdownWord.TOC = false
		}
		if cmd.Flags().Changed("toc-depth") {
			cfg.MarkdownWord.TOCDepth, _ = cmd.Flags().GetInt("toc-depth")
		}

		logger, closeLog, err := logging.New(types.KindMarkdownWord, cfg.Logging)
		if err != nil {
			return err
		}
		defer closeLog()

		output, _ := cmd.Flags().GetString("output")
		res := mdword.New(cfg.MarkdownWord, logger).Convert(cmd.Context(), types.Request{
			Input:  args[0],
			Output: output,
		})
		recordHistory(cfg, logger, types.KindMarkdownWord, res)
		if !res.OK() {
			return res.Err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	},
}

func init() {
	md2wordCmd.Flags().StringP("output", "o", "", "output .docx path (default: input with .docx extension)")
	md2wordCmd.Flags().String("pandoc", "", "path to the Pandoc binary")
	md2wordCmd.Flags().Bool("no-install", false, "fail instead of downloading Pandoc when it is missing")
	md2wordCmd.Flags().Bool("no-toc", false, "skip the table of contents")
	md2wordCmd.Flags().Int("toc-depth", 3, "deepest heading level in the table of contents")

	rootCmd.AddCommand(md2wordCmd)
}
