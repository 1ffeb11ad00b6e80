// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package wordpdf

import (
	"fmt"

	"github.com/pdiddy/docsmith/pkg/types"
)

// The Word automation interface only exists on Windows; everywhere else
// the driver reports unavailable and DetectDriver falls back to LibreOffice.
type wordDriver struct{}

func newWordDriver(types.WordPDFConfig) Driver { return wordDriver{} }

func (wordDriver) Name() string { return "word" }

func (wordDriver) Available() bool { return false }

func (wordDriver) Open() (Session, error) {
	return nil, fmt.Errorf("%w: Word automation requires Windows", types.ErrEngineUnavailable)
}
