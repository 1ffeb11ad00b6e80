// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package wordpdf

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/pdiddy/docsmith/pkg/types"
)

// wdFormatPDF is the Word SaveAs file format constant for PDF export.
const wdFormatPDF = 17

// wordDriver drives Microsoft Word through its COM automation interface.
type wordDriver struct {
	cfg types.WordPDFConfig
}

func newWordDriver(cfg types.WordPDFConfig) Driver {
	return &wordDriver{cfg: cfg}
}

func (d *wordDriver) Name() string { return "word" }

// Available reports whether the Word.Application ProgID is registered.
func (d *wordDriver) Available() bool {
	_, err := ole.ClassIDFrom("Word.Application")
	return err == nil
}

// Open starts a hidden Word instance. COM handles are bound to the OS
// thread they were created on, so the session pins its goroutine until
// Close.
func (d *wordDriver) Open() (Session, error) {
	runtime.LockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: initializing COM: %v", types.ErrEngineUnavailable, err)
	}

	unknown, err := oleutil.CreateObject("Word.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: starting Word: %v", types.ErrEngineUnavailable, err)
	}

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: querying Word dispatch interface: %v", types.ErrEngineUnavailable, err)
	}

	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		app.Release()
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: hiding Word window: %v", types.ErrEngineUnavailable, err)
	}

	docs := oleutil.MustGetProperty(app, "Documents").ToIDispatch()
	return &wordSession{unknown: unknown, app: app, docs: docs}, nil
}

type wordSession struct {
	unknown *ole.IUnknown
	app     *ole.IDispatch
	docs    *ole.IDispatch
}

// ExportPDF opens the document, saves it as PDF, and closes it without
// saving changes. The document handle never survives the call.
func (s *wordSession) ExportPDF(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}

	v, err := oleutil.CallMethod(s.docs, "Open", absIn)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", types.ErrEngineFailed, input, err)
	}
	doc := v.ToIDispatch()
	defer doc.Release()

	if _, err := oleutil.CallMethod(doc, "SaveAs", absOut, wdFormatPDF); err != nil {
		_, _ = oleutil.CallMethod(doc, "Close", false)
		return fmt.Errorf("%w: exporting %s: %v", types.ErrEngineFailed, input, err)
	}

	if _, err := oleutil.CallMethod(doc, "Close", false); err != nil {
		return fmt.Errorf("%w: closing %s: %v", types.ErrEngineFailed, input, err)
	}
	return nil
}

// Close quits Word and releases every COM handle. Quit failures are
// returned so the caller can log them; the handles are released either way.
func (s *wordSession) Close() error {
	_, quitErr := oleutil.CallMethod(s.app, "Quit")

	s.docs.Release()
	s.app.Release()
	s.unknown.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()

	if quitErr != nil {
		return fmt.Errorf("quitting Word: %w", quitErr)
	}
	return nil
}
