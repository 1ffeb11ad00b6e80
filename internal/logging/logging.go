// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the per-pipeline loggers. Each pipeline writes
// timestamped entries to its own append-only log file and mirrors them to
// the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/pdiddy/docsmith/pkg/types"
)

// Log file names, one per pipeline. Fixed since the first release.
const (
	WordPDFLogFile      = "word_to_pdf.log"
	MarkdownWordLogFile = "md_to_word.log"
	PDFImagesLogFile    = "pdf_to_images.log"
)

// FileFor maps a pipeline kind to its log file name.
func FileFor(kind types.Kind) string {
	switch kind {
	case types.KindWordPDF:
		return WordPDFLogFile
	case types.KindMarkdownWord:
		return MarkdownWordLogFile
	case types.KindPDFImages:
		return PDFImagesLogFile
	}
	return "docsmith.log"
}

// Dir resolves the log directory: the configured override, or the user
// state directory.
func Dir(cfg types.LoggingConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return filepath.Join(xdg.StateHome, "docsmith"), nil
}

// New opens the log file for kind and returns a logger writing to both the
// file and stderr, plus a close function that flushes the file handle.
// Initialized once per command invocation.
func New(kind types.Kind, cfg types.LoggingConfig) (*log.Logger, func(), error) {
	dir, err := Dir(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileFor(kind))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	l := log.NewWithOptions(io.MultiWriter(f, os.Stderr), log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})

	return l, func() { _ = f.Close() }, nil
}

// Discard returns a logger that drops all output. Used by tests and by the
// TUI, which renders progress itself.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
