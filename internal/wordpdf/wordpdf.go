// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordpdf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/docsmith/internal/fileutil"
	"github.com/pdiddy/docsmith/pkg/types"
)

// supportedExts are the input extensions this pipeline accepts.
var supportedExts = []string{".doc", ".docx", ".rtf"}

// Orchestrator sequences Word to PDF conversions over a scoped word
// processor session. Single conversions open and close their own session;
// batch runs share one session across all files.
type Orchestrator struct {
	cfg types.WordPDFConfig
	log *log.Logger

	// detect picks the driver. Tests replace it to inject fakes.
	detect func() (Driver, error)
}

// New creates an Orchestrator using the configured driver preference.
func New(cfg types.WordPDFConfig, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		log:    logger,
		detect: func() (Driver, error) { return DetectDriver(cfg) },
	}
}

// Convert runs one conversion inside its own session. Every attempt is
// logged; the session is released on all paths.
func (o *Orchestrator) Convert(ctx context.Context, req types.Request) types.Result {
	start := time.Now()
	res := o.convertSingle(ctx, req)
	res.Duration = time.Since(start)

	if res.OK() {
		o.log.Info("conversion succeeded", "input", res.Input, "output", res.Output, "duration", res.Duration.Round(time.Millisecond))
	} else {
		o.log.Error("conversion failed", "input", res.Input, "error", res.Err)
	}
	return res
}

func (o *Orchestrator) convertSingle(ctx context.Context, req types.Request) types.Result {
	res := types.Result{Input: req.Input, Output: req.Output}

	// Validation happens before any session work so a bad path never
	// launches the word processor.
	if err := fileutil.ValidateInput(req.Input, supportedExts...); err != nil {
		res.Err = err
		return res
	}

	driver, err := o.detect()
	if err != nil {
		res.Err = err
		return res
	}

	session, err := driver.Open()
	if err != nil {
		res.Err = err
		return res
	}
	defer o.closeSession(driver, session)
	o.log.Debug("session opened", "driver", driver.Name())

	return o.convertFile(ctx, session, req)
}

// ConvertBatch converts each input sequentially over one shared session.
// A failure on one file never stops the remaining files. outDir receives
// the derived outputs; empty means beside each input. onFile, when non-nil,
// is called once per file with its 1-based index.
func (o *Orchestrator) ConvertBatch(ctx context.Context, inputs []string, outDir string, onFile func(i, n int, res types.Result)) (types.BatchResult, error) {
	var batch types.BatchResult

	driver, err := o.detect()
	if err != nil {
		return batch, err
	}
	session, err := driver.Open()
	if err != nil {
		return batch, err
	}
	defer o.closeSession(driver, session)
	o.log.Debug("session opened", "driver", driver.Name(), "files", len(inputs))

	for i, input := range inputs {
		req := types.Request{Input: input}
		if outDir != "" {
			req.Output = filepath.Join(outDir, fileutil.Stem(input)+".pdf")
		}

		o.log.Info("converting", "file", filepath.Base(input), "index", fmt.Sprintf("%d/%d", i+1, len(inputs)))

		start := time.Now()
		res := o.convertFile(ctx, session, req)
		res.Duration = time.Since(start)

		if res.OK() {
			o.log.Info("conversion succeeded", "input", res.Input, "output", res.Output)
		} else {
			o.log.Error("conversion failed", "input", res.Input, "error", res.Err)
		}

		batch.Add(res)
		if onFile != nil {
			onFile(i+1, len(inputs), res)
		}
	}

	o.log.Info("batch finished", "converted", batch.Converted, "failed", batch.Failed, "total", batch.Total())
	return batch, nil
}

// convertFile applies the single-file contract against an open session.
func (o *Orchestrator) convertFile(ctx context.Context, session Session, req types.Request) types.Result {
	res := types.Result{Input: req.Input, Output: req.Output}

	if err := fileutil.ValidateInput(req.Input, supportedExts...); err != nil {
		res.Err = err
		return res
	}

	if res.Output == "" {
		res.Output = fileutil.ReplaceExt(req.Input, ".pdf")
	}
	if err := fileutil.EnsureParentDir(res.Output); err != nil {
		res.Err = err
		return res
	}

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	if err := session.ExportPDF(ctx, req.Input, res.Output); err != nil {
		res.Err = err
		return res
	}

	if !fileutil.FileExists(res.Output) {
		res.Err = fmt.Errorf("%w: %s", types.ErrOutputMissing, res.Output)
	}
	return res
}

// closeSession releases the session. Teardown failure can leave the word
// processor running under automation control; it is logged, not returned.
func (o *Orchestrator) closeSession(driver Driver, session Session) {
	if err := session.Close(); err != nil {
		o.log.Warn("session teardown failed", "driver", driver.Name(), "error", err)
	}
}
