// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileutil provides the path helpers shared by all conversion
// pipelines: input validation, output path derivation, and directory
// creation.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docsmith/pkg/types"
)

// FileExists returns true if path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReplaceExt returns path with its extension replaced by newExt. newExt
// must include the leading dot. A path without an extension gets newExt
// appended.
func ReplaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

// ValidateInput checks that path exists and carries one of the allowed
// extensions (case-insensitive). Existence is checked first, matching the
// message order users have always seen.
func ValidateInput(path string, allowed ...string) error {
	if !FileExists(path) {
		return fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (supported: %s)", types.ErrUnsupportedFormat, ext, strings.Join(allowed, ", "))
}

// EnsureParentDir creates the parent directory of path if it does not exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
