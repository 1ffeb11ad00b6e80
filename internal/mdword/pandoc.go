// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdword converts Markdown files to Word documents by driving the
// Pandoc engine as a subprocess. The engine binary is located on PATH or
// installed into the user data directory on first use.
package mdword

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/docsmith/pkg/types"
)

// Engine converts one Markdown file to a Word document.
type Engine interface {
	Convert(ctx context.Context, input, output string) error
}

// executor abstracts command execution for testing.
type executor interface {
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
	Output(ctx context.Context, name string, args ...string) (stdout string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

func (osExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// PandocEngine invokes the Pandoc binary. The reader format and TOC options
// come from the pipeline configuration.
type PandocEngine struct {
	bin  string
	cfg  types.MarkdownWordConfig
	exec executor
}

// NewPandocEngine creates an engine around the Pandoc binary at bin.
func NewPandocEngine(bin string, cfg types.MarkdownWordConfig) *PandocEngine {
	return &PandocEngine{bin: bin, cfg: cfg, exec: osExecutor{}}
}

// Convert runs Pandoc on input and writes the Word document to output.
// A nonzero exit wraps stderr into the returned error.
func (e *PandocEngine) Convert(ctx context.Context, input, output string) error {
	stderr, err := e.exec.Run(ctx, e.bin, buildArgs(input, output, e.cfg)...)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: pandoc: %s", types.ErrEngineFailed, msg)
	}
	return nil
}

// Version returns the first line of `pandoc --version`.
func (e *PandocEngine) Version(ctx context.Context) (string, error) {
	out, err := e.exec.Output(ctx, e.bin, "--version")
	if err != nil {
		return "", fmt.Errorf("querying pandoc version: %w", err)
	}
	line, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(line), nil
}

// buildArgs assembles the Pandoc command line. The reader format is
// "markdown" plus the configured extensions; TOC generation and depth come
// from the config.
func buildArgs(input, output string, cfg types.MarkdownWordConfig) []string {
	from := "markdown"
	for _, ext := range cfg.Extensions {
		from += "+" + ext
	}

	args := []string{
		input,
		"--from=" + from,
		"--to=docx",
		"--standalone",
	}
	if cfg.TOC {
		depth := cfg.TOCDepth
		if depth <= 0 {
			depth = 3
		}
		args = append(args, "--toc", fmt.Sprintf("--toc-depth=%d", depth))
	}
	args = append(args, "--wrap=auto", "--quiet", "-o", output)
	return args
}
