// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors shared by all conversion pipelines. Orchestrators wrap
// these with %w so command-level code can classify failures with errors.Is.
var (
	// ErrInputNotFound indicates the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrUnsupportedFormat indicates the input extension is outside the
	// pipeline's supported set.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrEngineUnavailable indicates no usable conversion engine could be
	// found or bootstrapped.
	ErrEngineUnavailable = errors.New("conversion engine unavailable")

	// ErrEngineFailed indicates the engine was invoked but reported failure.
	ErrEngineFailed = errors.New("conversion engine failed")

	// ErrOutputMissing indicates the engine reported success but the
	// expected output file is absent.
	ErrOutputMissing = errors.New("output file missing after conversion")
)
