// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfimg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/pkg/types"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		in      string
		want    PageRange
		wantErr bool
	}{
		{"", PageRange{}, false},
		{"3", PageRange{First: 3, Last: 3}, false},
		{"1-5", PageRange{First: 1, Last: 5}, false},
		{"2-", PageRange{First: 2}, false},
		{"-5", PageRange{Last: 5}, false},
		{" 1 - 5 ", PageRange{First: 1, Last: 5}, false},
		{"5-1", PageRange{}, true},
		{"0-3", PageRange{}, true},
		{"abc", PageRange{}, true},
		{"1-x", PageRange{}, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := ParsePageRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageRange_All(t *testing.T) {
	assert.True(t, PageRange{}.All())
	assert.False(t, PageRange{First: 1}.All())
}

// pdftoppmExec fakes pdftoppm: on success it writes one page image for the
// given prefix.
type pdftoppmExec struct {
	args   []string
	output string
	err    error
	format string
}

func (f *pdftoppmExec) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	if f.err != nil {
		return f.output, f.err
	}
	prefix := args[len(args)-1]
	return "", os.WriteFile(prefix+"-1."+f.format, []byte("img"), 0o644)
}

func newTestOrchestrator(cfg types.PDFImagesConfig, pages PageRange, exec *pdftoppmExec) *Orchestrator {
	o := New(cfg, pages, logging.Discard())
	o.exec = exec
	o.lookPath = func(string) (string, error) { return "/usr/bin/pdftoppm", nil }
	return o
}

func writePDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "slides.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestConvert_DerivesImageDirectory(t *testing.T) {
	cfg := types.DefaultConfig().PDFImages
	o := newTestOrchestrator(cfg, PageRange{}, &pdftoppmExec{format: "png"})

	dir := t.TempDir()
	input := writePDF(t, dir)
	res := o.Convert(context.Background(), types.Request{Input: input})

	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(dir, "slides_images"), res.Output)
	assert.FileExists(t, filepath.Join(res.Output, "slides-1.png"))
}

func TestConvert_BuildsPNGArgs(t *testing.T) {
	cfg := types.DefaultConfig().PDFImages
	exec := &pdftoppmExec{format: "png"}
	o := newTestOrchestrator(cfg, PageRange{First: 2, Last: 4}, exec)

	input := writePDF(t, t.TempDir())
	res := o.Convert(context.Background(), types.Request{Input: input})
	require.NoError(t, res.Err)

	joined := strings.Join(exec.args, " ")
	assert.Contains(t, joined, "-png")
	assert.Contains(t, joined, "-r 144")
	assert.Contains(t, joined, "-f 2")
	assert.Contains(t, joined, "-l 4")
	assert.NotContains(t, joined, "-jpegopt")
}

func TestConvert_BuildsJPEGArgs(t *testing.T) {
	cfg := types.PDFImagesConfig{Format: "jpg", DPI: 216, JPEGQuality: 80}
	exec := &pdftoppmExec{format: "jpg"}
	o := newTestOrchestrator(cfg, PageRange{}, exec)

	input := writePDF(t, t.TempDir())
	res := o.Convert(context.Background(), types.Request{Input: input})
	require.NoError(t, res.Err)

	joined := strings.Join(exec.args, " ")
	assert.Contains(t, joined, "-jpeg")
	assert.Contains(t, joined, "quality=80")
	assert.Contains(t, joined, "-r 216")
}

func TestConvert_NonPDFInput(t *testing.T) {
	o := newTestOrchestrator(types.DefaultConfig().PDFImages, PageRange{}, &pdftoppmExec{format: "png"})

	dir := t.TempDir()
	input := filepath.Join(dir, "doc.docx")
	require.NoError(t, os.WriteFile(input, []byte("doc"), 0o644))

	res := o.Convert(context.Background(), types.Request{Input: input})
	assert.ErrorIs(t, res.Err, types.ErrUnsupportedFormat)
}

func TestConvert_BadImageFormat(t *testing.T) {
	cfg := types.PDFImagesConfig{Format: "tiff"}
	o := newTestOrchestrator(cfg, PageRange{}, &pdftoppmExec{format: "png"})

	res := o.Convert(context.Background(), types.Request{Input: writePDF(t, t.TempDir())})
	assert.ErrorIs(t, res.Err, types.ErrUnsupportedFormat)
}

func TestConvert_EngineMissing(t *testing.T) {
	o := newTestOrchestrator(types.DefaultConfig().PDFImages, PageRange{}, &pdftoppmExec{format: "png"})
	o.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	res := o.Convert(context.Background(), types.Request{Input: writePDF(t, t.TempDir())})
	assert.ErrorIs(t, res.Err, types.ErrEngineUnavailable)
}

func TestConvert_EngineFailure(t *testing.T) {
	exec := &pdftoppmExec{output: "Syntax Error: couldn't read xref table", err: errors.New("exit status 1")}
	o := newTestOrchestrator(types.DefaultConfig().PDFImages, PageRange{}, exec)

	res := o.Convert(context.Background(), types.Request{Input: writePDF(t, t.TempDir())})
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, types.ErrEngineFailed)
	assert.Contains(t, res.Err.Error(), "xref table")
}

func TestConvert_NoPagesProduced(t *testing.T) {
	// pdftoppm exits zero but writes nothing (page range past the end).
	exec := &pdftoppmExec{format: "png"}
	exec.err = nil
	o := newTestOrchestrator(types.DefaultConfig().PDFImages, PageRange{First: 99, Last: 99}, exec)
	o.exec = noWriteExec{}

	res := o.Convert(context.Background(), types.Request{Input: writePDF(t, t.TempDir())})
	assert.ErrorIs(t, res.Err, types.ErrOutputMissing)
}

type noWriteExec struct{}

func (noWriteExec) CombinedOutput(ctx context.Context, name string, args ...string) (string, error) {
	return "", nil
}
