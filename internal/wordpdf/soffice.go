// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordpdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docsmith/internal/fileutil"
	"github.com/pdiddy/docsmith/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	CombinedOutput(ctx context.Context, name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// sofficeProbePaths are the well-known LibreOffice install locations,
// checked before falling back to PATH.
var sofficeProbePaths = []string{
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/opt/homebrew/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	`C:\Program Files\LibreOffice\program\soffice.exe`,
}

// SofficeDriver drives LibreOffice in headless mode. Unlike the Word
// driver there is no long-lived application handle; each export is one
// `soffice --headless --convert-to pdf` invocation.
type SofficeDriver struct {
	cfg      types.WordPDFConfig
	exec     executor
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

func newSofficeDriver(cfg types.WordPDFConfig) *SofficeDriver {
	return &SofficeDriver{
		cfg:      cfg,
		exec:     osExecutor{},
		lookPath: exec.LookPath,
		stat:     os.Stat,
	}
}

func (d *SofficeDriver) Name() string { return "soffice" }

func (d *SofficeDriver) Available() bool {
	_, err := d.bin()
	return err == nil
}

// bin resolves the soffice binary: config override, well-known locations,
// then PATH.
func (d *SofficeDriver) bin() (string, error) {
	if d.cfg.SofficePath != "" {
		if _, err := d.stat(d.cfg.SofficePath); err != nil {
			return "", fmt.Errorf("configured soffice path %s: %w", d.cfg.SofficePath, err)
		}
		return d.cfg.SofficePath, nil
	}
	for _, p := range sofficeProbePaths {
		if _, err := d.stat(p); err == nil {
			return p, nil
		}
	}
	if p, err := d.lookPath("soffice"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("soffice not found")
}

// Open creates a session with a private user profile directory. A unique
// profile avoids lock contention with a desktop LibreOffice instance.
func (d *SofficeDriver) Open() (Session, error) {
	bin, err := d.bin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEngineUnavailable, err)
	}
	profileDir, err := os.MkdirTemp("", "docsmith-soffice-*")
	if err != nil {
		return nil, fmt.Errorf("creating soffice profile directory: %w", err)
	}
	return &sofficeSession{bin: bin, profileDir: profileDir, exec: d.exec}, nil
}

type sofficeSession struct {
	bin        string
	profileDir string
	exec       executor
}

// ExportPDF converts input with one headless invocation. soffice always
// names its output <stem>.pdf inside --outdir, so the file is renamed when
// the requested output differs.
func (s *sofficeSession) ExportPDF(ctx context.Context, input, output string) error {
	outDir := filepath.Dir(output)
	args := []string{
		"-env:UserInstallation=file://" + filepath.ToSlash(s.profileDir),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		input,
	}

	out, err := s.exec.CombinedOutput(ctx, s.bin, args...)
	if err != nil {
		msg := strings.TrimSpace(out)
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: soffice: %s", types.ErrEngineFailed, msg)
	}

	produced := filepath.Join(outDir, fileutil.Stem(input)+".pdf")
	if produced != output {
		if err := os.Rename(produced, output); err != nil {
			return fmt.Errorf("%w: renaming soffice output: %v", types.ErrEngineFailed, err)
		}
	}
	return nil
}

// Close removes the private profile directory.
func (s *sofficeSession) Close() error {
	return os.RemoveAll(s.profileDir)
}
