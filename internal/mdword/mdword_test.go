// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdword

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/internal/logging"
	"github.com/pdiddy/docsmith/pkg/types"
)

// fakeResolver returns a fixed binary path or an error.
type fakeResolver struct {
	bin string
	err error
}

func (f *fakeResolver) Resolve(ctx context.Context) (string, error) {
	return f.bin, f.err
}

// fakeEngine records invocations and optionally writes the output file,
// mimicking a real engine run.
type fakeEngine struct {
	calls       int
	err         error
	writeOutput bool
}

func (f *fakeEngine) Convert(ctx context.Context, input, output string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.writeOutput {
		return os.WriteFile(output, []byte("docx"), 0o644)
	}
	return nil
}

func newTestOrchestrator(engine *fakeEngine) *Orchestrator {
	cfg := types.DefaultConfig().MarkdownWord
	o := New(cfg, logging.Discard())
	o.resolver = &fakeResolver{bin: "/usr/bin/pandoc"}
	o.engineFor = func(string) Engine { return engine }
	return o
}

func writeMarkdown(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nBody.\n"), 0o644))
	return path
}

func TestConvert_DerivesOutputPath(t *testing.T) {
	engine := &fakeEngine{writeOutput: true}
	o := newTestOrchestrator(engine)

	input := writeMarkdown(t, "guide.md")
	res := o.Convert(context.Background(), types.Request{Input: input})

	require.NoError(t, res.Err)
	assert.Equal(t, strings.TrimSuffix(input, ".md")+".docx", res.Output)
	assert.Equal(t, 1, engine.calls)
	assert.FileExists(t, res.Output)
}

func TestConvert_CreatesOutputDirectory(t *testing.T) {
	engine := &fakeEngine{writeOutput: true}
	o := newTestOrchestrator(engine)

	input := writeMarkdown(t, "guide.md")
	out := filepath.Join(filepath.Dir(input), "out", "guide.docx")
	res := o.Convert(context.Background(), types.Request{Input: input, Output: out})

	require.NoError(t, res.Err)
	assert.FileExists(t, out)
}

func TestConvert_MissingInput(t *testing.T) {
	engine := &fakeEngine{}
	o := newTestOrchestrator(engine)

	res := o.Convert(context.Background(), types.Request{Input: filepath.Join(t.TempDir(), "nope.md")})

	assert.ErrorIs(t, res.Err, types.ErrInputNotFound)
	assert.Zero(t, engine.calls, "engine must not be invoked")
}

func TestConvert_UnsupportedExtension(t *testing.T) {
	engine := &fakeEngine{}
	o := newTestOrchestrator(engine)

	input := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("text"), 0o644))

	res := o.Convert(context.Background(), types.Request{Input: input})

	assert.ErrorIs(t, res.Err, types.ErrUnsupportedFormat)
	assert.Zero(t, engine.calls, "engine must not be invoked")
}

func TestConvert_ResolverFailure(t *testing.T) {
	engine := &fakeEngine{}
	o := newTestOrchestrator(engine)
	o.resolver = &fakeResolver{err: types.ErrEngineUnavailable}

	res := o.Convert(context.Background(), types.Request{Input: writeMarkdown(t, "a.md")})

	assert.ErrorIs(t, res.Err, types.ErrEngineUnavailable)
	assert.Zero(t, engine.calls)
}

func TestConvert_EngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("pandoc exploded")}
	o := newTestOrchestrator(engine)

	res := o.Convert(context.Background(), types.Request{Input: writeMarkdown(t, "a.md")})

	require.Error(t, res.Err)
	assert.False(t, res.OK())
	assert.Equal(t, types.StatusFailed, res.Status())
}

func TestConvert_OutputMissingAfterSuccess(t *testing.T) {
	// Engine reports success but writes nothing.
	engine := &fakeEngine{writeOutput: false}
	o := newTestOrchestrator(engine)

	res := o.Convert(context.Background(), types.Request{Input: writeMarkdown(t, "a.md")})

	assert.ErrorIs(t, res.Err, types.ErrOutputMissing)
}
