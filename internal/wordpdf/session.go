// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordpdf converts Word documents to PDF by driving an installed
// word processor: Microsoft Word through its COM automation interface on
// Windows, or LibreOffice in headless mode elsewhere.
package wordpdf

import (
	"context"
	"fmt"

	"github.com/pdiddy/docsmith/pkg/types"
)

// Session is an exclusive handle on a running word processor instance.
// A session is owned by one conversion run and must be closed on every
// exit path. Documents opened during a call never outlive it.
type Session interface {
	// ExportPDF opens the document at input and writes a PDF to output.
	ExportPDF(ctx context.Context, input, output string) error

	// Close tears down the word processor instance. A failed teardown can
	// leave the application running under automation control; callers log
	// it and move on.
	Close() error
}

// Driver launches word processor sessions. Word and LibreOffice share the
// same surface; they differ only in how the application is controlled.
type Driver interface {
	// Name returns the driver name ("word" or "soffice").
	Name() string

	// Available reports whether the word processor is installed and usable.
	Available() bool

	// Open starts a session. The caller owns it until Close.
	Open() (Session, error)
}

// DetectDriver picks the driver for the configured preference. "auto"
// prefers Word automation where present and falls back to LibreOffice.
func DetectDriver(cfg types.WordPDFConfig) (Driver, error) {
	word := newWordDriver(cfg)
	soffice := newSofficeDriver(cfg)

	switch cfg.Driver {
	case "", "auto":
		if word.Available() {
			return word, nil
		}
		if soffice.Available() {
			return soffice, nil
		}
		return nil, fmt.Errorf("%w: no word processor found (need Microsoft Word or LibreOffice)", types.ErrEngineUnavailable)
	case "word":
		if !word.Available() {
			return nil, fmt.Errorf("%w: Word automation not available on this system", types.ErrEngineUnavailable)
		}
		return word, nil
	case "soffice":
		if !soffice.Available() {
			return nil, fmt.Errorf("%w: LibreOffice not found", types.ErrEngineUnavailable)
		}
		return soffice, nil
	}
	return nil, fmt.Errorf("%w: unknown driver %q", types.ErrEngineUnavailable, cfg.Driver)
}
