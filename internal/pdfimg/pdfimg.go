// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfimg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/docsmith/internal/fileutil"
	"github.com/pdiddy/docsmith/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	CombinedOutput(ctx context.Context, name string, args ...string) (string, error)
}

type osExecutor struct{}

func (osExecutor) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Orchestrator renders PDF pages to images. The output of one run is a
// directory of <stem>-<page>.png or .jpg files.
type Orchestrator struct {
	cfg   types.PDFImagesConfig
	log   *log.Logger
	pages PageRange

	exec     executor
	lookPath func(string) (string, error)
}

// New creates an Orchestrator. pages limits the rendered interval; the
// zero value renders every page.
func New(cfg types.PDFImagesConfig, pages PageRange, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		log:      logger,
		pages:    pages,
		exec:     osExecutor{},
		lookPath: exec.LookPath,
	}
}

// Convert renders req.Input into req.Output (a directory; empty derives
// "<stem>_images" beside the input). Result.Output is the directory path.
func (o *Orchestrator) Convert(ctx context.Context, req types.Request) types.Result {
	start := time.Now()
	res := o.convert(ctx, req)
	res.Duration = time.Since(start)

	if res.OK() {
		o.log.Info("conversion succeeded", "input", res.Input, "output", res.Output, "duration", res.Duration.Round(time.Millisecond))
	} else {
		o.log.Error("conversion failed", "input", res.Input, "error", res.Err)
	}
	return res
}

func (o *Orchestrator) convert(ctx context.Context, req types.Request) types.Result {
	res := types.Result{Input: req.Input, Output: req.Output}

	if err := fileutil.ValidateInput(req.Input, ".pdf"); err != nil {
		res.Err = err
		return res
	}

	format := strings.ToLower(o.cfg.Format)
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		res.Err = fmt.Errorf("%w: image format %q (supported: png, jpg)", types.ErrUnsupportedFormat, o.cfg.Format)
		return res
	}

	if res.Output == "" {
		res.Output = filepath.Join(filepath.Dir(req.Input), fileutil.Stem(req.Input)+"_images")
	}
	if err := os.MkdirAll(res.Output, 0o755); err != nil {
		res.Err = fmt.Errorf("creating output directory %s: %w", res.Output, err)
		return res
	}

	bin, err := o.lookPath("pdftoppm")
	if err != nil {
		res.Err = fmt.Errorf("%w: pdftoppm not found (install Poppler)", types.ErrEngineUnavailable)
		return res
	}

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	prefix := filepath.Join(res.Output, fileutil.Stem(req.Input))
	out, err := o.exec.CombinedOutput(ctx, bin, o.buildArgs(format, req.Input, prefix)...)
	if err != nil {
		msg := strings.TrimSpace(out)
		if msg == "" {
			msg = err.Error()
		}
		res.Err = fmt.Errorf("%w: pdftoppm: %s", types.ErrEngineFailed, msg)
		return res
	}

	// pdftoppm exits zero even when nothing matched the page range.
	pages, err := filepath.Glob(prefix + "*." + format)
	if err == nil && len(pages) == 0 {
		res.Err = fmt.Errorf("%w: no page images under %s", types.ErrOutputMissing, res.Output)
	}
	return res
}

func (o *Orchestrator) buildArgs(format, input, prefix string) []string {
	args := []string{}
	if format == "jpg" {
		args = append(args, "-jpeg")
		if o.cfg.JPEGQuality > 0 {
			args = append(args, "-jpegopt", fmt.Sprintf("quality=%d", o.cfg.JPEGQuality))
		}
	} else {
		args = append(args, "-png")
	}
	if o.cfg.DPI > 0 {
		args = append(args, "-r", fmt.Sprintf("%d", o.cfg.DPI))
	}
	if o.pages.First > 0 {
		args = append(args, "-f", fmt.Sprintf("%d", o.pages.First))
	}
	if o.pages.Last > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", o.pages.Last))
	}
	return append(args, input, prefix)
}
