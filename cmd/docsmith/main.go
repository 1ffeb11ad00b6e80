// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docsmith CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsmith/internal/history"
	"github.com/pdiddy/docsmith/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docsmith CLI.
var rootCmd = &cobra.Command{
	Use:   "docsmith",
	Short: "Convert documents by driving installed engines",
	Long: `docsmith converts documents by driving the conversion engines already
installed on the machine: a word processor for Word to PDF, Pandoc for
Markdown to Word, and Poppler for PDF page images.

Each pipeline is a subcommand: word2pdf, md2word, and pdf2img. Every
conversion is written to a per-pipeline log file and recorded in the
conversion ledger; see the history subcommand.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docsmith.yaml or ~/.config/docsmith/docsmith.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug log entries")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docsmith")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docsmith"))
		}
	}

	viper.SetEnvPrefix("DOCSMITH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the built-in defaults.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	})
	if err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		cfg.Logging.Verbose = true
	}
	return cfg, nil
}

// recordHistory appends results to the conversion ledger. The ledger is
// best-effort: failures are logged and never fail the conversion.
func recordHistory(cfg types.Config, logger *log.Logger, kind types.Kind, results ...types.Result) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		logger.Warn("ledger unavailable", "error", err)
		return
	}
	defer store.Close()

	for _, res := range results {
		if err := store.Record(context.Background(), kind, res); err != nil {
			logger.Warn("ledger write failed", "input", res.Input, "error", err)
		}
	}
}

// exitCode maps an error to the process exit code: 2 for input problems,
// 3 when no engine is available, 4 when an engine reported success but
// produced no output, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, types.ErrInputNotFound), errors.Is(err, types.ErrUnsupportedFormat):
		return 2
	case errors.Is(err, types.ErrEngineUnavailable):
		return 3
	case errors.Is(err, types.ErrOutputMissing):
		return 4
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
