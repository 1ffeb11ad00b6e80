// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdword

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/docsmith/internal/fileutil"
	"github.com/pdiddy/docsmith/pkg/types"
)

// supportedExts are the input extensions this pipeline accepts.
var supportedExts = []string{".md", ".markdown"}

// Orchestrator sequences one Markdown to Word conversion: validate input,
// derive the output path, resolve the engine, invoke it, and verify the
// output exists.
type Orchestrator struct {
	cfg      types.MarkdownWordConfig
	log      *log.Logger
	resolver Resolver

	// engineFor builds the engine once the binary path is known. Tests
	// replace it to inject fakes.
	engineFor func(bin string) Engine
}

// New creates an Orchestrator with the production resolver and engine.
func New(cfg types.MarkdownWordConfig, logger *log.Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		log:      logger,
		resolver: NewInstaller(cfg),
	}
	o.engineFor = func(bin string) Engine {
		return NewPandocEngine(bin, cfg)
	}
	return o
}

// Convert runs one conversion. Validation failures never reach the engine,
// and a reported-successful engine run with no output file is still a
// failure. Every attempt is logged.
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

	if err := fileutil.ValidateInput(req.Input, supportedExts...); err != nil {
		res.Err = err
		return res
	}

	if res.Output == "" {
		res.Output = fileutil.ReplaceExt(req.Input, ".docx")
	}
	if err := fileutil.EnsureParentDir(res.Output); err != nil {
		res.Err = err
		return res
	}

	bin, err := o.resolver.Resolve(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	o.log.Debug("engine resolved", "pandoc", bin)

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	if err := o.engineFor(bin).Convert(ctx, req.Input, res.Output); err != nil {
		res.Err = err
		return res
	}

	if !fileutil.FileExists(res.Output) {
		res.Err = fmt.Errorf("%w: %s", types.ErrOutputMissing, res.Output)
	}
	return res
}
