// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdword

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsmith/pkg/types"
)

func newTestInstaller(t *testing.T, cfg types.MarkdownWordConfig) *Installer {
	t.Helper()
	i := NewInstaller(cfg)
	i.dataDir = t.TempDir()
	i.lookPath = func(string) (string, error) { return "", errors.New("not on PATH") }
	i.goos = "linux"
	i.goarch = "amd64"
	return i
}

// buildTarGz returns a gzipped tarball containing the given members.
func buildTarGz(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// buildZip returns a zip archive containing the given members.
func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serveArchive(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(ts.Close)

	old := pandocReleaseBase
	pandocReleaseBase = ts.URL
	t.Cleanup(func() { pandocReleaseBase = old })
	return ts
}

func TestResolve_ConfiguredPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "pandoc")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh"), 0o755))

	i := newTestInstaller(t, types.MarkdownWordConfig{PandocPath: bin})
	got, err := i.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bin, got)
}

func TestResolve_ConfiguredPathMissing(t *testing.T) {
	i := newTestInstaller(t, types.MarkdownWordConfig{PandocPath: "/nonexistent/pandoc"})
	_, err := i.Resolve(context.Background())
	assert.ErrorIs(t, err, types.ErrEngineUnavailable)
}

func TestResolve_PATHWins(t *testing.T) {
	i := newTestInstaller(t, types.MarkdownWordConfig{})
	i.lookPath = func(string) (string, error) { return "/usr/local/bin/pandoc", nil }

	got, err := i.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/pandoc", got)
}

func TestResolve_ManagedInstallReused(t *testing.T) {
	i := newTestInstaller(t, types.MarkdownWordConfig{})
	managed := i.managedBin()
	require.NoError(t, os.MkdirAll(filepath.Dir(managed), 0o755))
	require.NoError(t, os.WriteFile(managed, []byte("bin"), 0o755))

	got, err := i.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, managed, got)
}

func TestResolve_AutoInstallDisabled(t *testing.T) {
	i := newTestInstaller(t, types.MarkdownWordConfig{AutoInstall: false})
	_, err := i.Resolve(context.Background())
	assert.ErrorIs(t, err, types.ErrEngineUnavailable)
}

func TestResolve_InstallsFromTarGz(t *testing.T) {
	body := buildTarGz(t, map[string]string{
		fmt.Sprintf("pandoc-%s/bin/pandoc", pandocVersion): "fake pandoc binary",
		fmt.Sprintf("pandoc-%s/share/man/pandoc.1", pandocVersion): "man page",
	})
	serveArchive(t, body)

	i := newTestInstaller(t, types.MarkdownWordConfig{AutoInstall: true})
	i.client = http.DefaultClient

	got, err := i.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, i.managedBin(), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "fake pandoc binary", string(data))

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "binary must be executable")
}

func TestResolve_InstallsFromZip(t *testing.T) {
	body := buildZip(t, map[string]string{
		fmt.Sprintf("pandoc-%s/pandoc.exe", pandocVersion): "fake exe",
	})
	serveArchive(t, body)

	i := newTestInstaller(t, types.MarkdownWordConfig{AutoInstall: true})
	i.goos = "windows"
	i.goarch = "amd64"

	got, err := i.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, i.managedBin(), got)
	assert.FileExists(t, got)
}

func TestResolve_DownloadFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := pandocReleaseBase
	pandocReleaseBase = ts.URL
	defer func() { pandocReleaseBase = old }()

	i := newTestInstaller(t, types.MarkdownWordConfig{AutoInstall: true})
	_, err := i.Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEngineUnavailable)

	// Nothing may be left at the managed location.
	assert.NoFileExists(t, i.managedBin())
}

func TestResolve_ArchiveWithoutBinary(t *testing.T) {
	body := buildTarGz(t, map[string]string{"pandoc-x/README": "no binary here"})
	serveArchive(t, body)

	i := newTestInstaller(t, types.MarkdownWordConfig{AutoInstall: true})
	_, err := i.Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEngineUnavailable)
}

func TestArchiveName_UnsupportedPlatform(t *testing.T) {
	i := newTestInstaller(t, types.MarkdownWordConfig{})
	i.goos = "plan9"
	_, err := i.archiveName()
	assert.Error(t, err)
}
