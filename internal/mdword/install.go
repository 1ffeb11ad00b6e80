// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdword

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/pdiddy/docsmith/internal/fileutil"
	"github.com/pdiddy/docsmith/internal/httputil"
	"github.com/pdiddy/docsmith/pkg/types"
)

// pandocVersion is the release installed when no system Pandoc is found.
const pandocVersion = "3.1.13"

// pandocReleaseBase is the GitHub release download root. Tests point it at
// a local server.
var pandocReleaseBase = "https://github.com/jgm/pandoc/releases/download"

// Resolver locates a usable engine binary, installing one if necessary.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Installer resolves the Pandoc binary: configured path, then PATH, then
// the managed install under the user data directory, downloading a release
// archive there when allowed. Installation never needs elevated privileges.
type Installer struct {
	cfg     types.MarkdownWordConfig
	client  *http.Client
	dataDir string

	// Injection points for tests.
	lookPath func(string) (string, error)
	goos     string
	goarch   string
}

// NewInstaller creates an Installer for the given pipeline configuration.
func NewInstaller(cfg types.MarkdownWordConfig) *Installer {
	return &Installer{
		cfg:      cfg,
		client:   http.DefaultClient,
		dataDir:  filepath.Join(xdg.DataHome, "docsmith"),
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
	}
}

// Resolve returns the path of a usable Pandoc binary.
func (i *Installer) Resolve(ctx context.Context) (string, error) {
	if i.cfg.PandocPath != "" {
		if !fileutil.FileExists(i.cfg.PandocPath) {
			return "", fmt.Errorf("%w: configured pandoc path %s does not exist", types.ErrEngineUnavailable, i.cfg.PandocPath)
		}
		return i.cfg.PandocPath, nil
	}

	if path, err := i.lookPath("pandoc"); err == nil {
		return path, nil
	}

	managed := i.managedBin()
	if fileutil.FileExists(managed) {
		return managed, nil
	}

	if !i.cfg.AutoInstall {
		return "", fmt.Errorf("%w: pandoc not found on PATH and auto-install is disabled", types.ErrEngineUnavailable)
	}

	if err := i.install(ctx); err != nil {
		return "", fmt.Errorf("%w: installing pandoc: %v", types.ErrEngineUnavailable, err)
	}
	return managed, nil
}

// managedBin is where the downloaded binary lives.
func (i *Installer) managedBin() string {
	name := "pandoc"
	if i.goos == "windows" {
		name = "pandoc.exe"
	}
	return filepath.Join(i.dataDir, "pandoc", pandocVersion, name)
}

// install downloads the release archive for this platform and extracts the
// Pandoc binary into the managed location.
func (i *Installer) install(ctx context.Context) error {
	name, err := i.archiveName()
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s/%s", pandocReleaseBase, pandocVersion, name)

	tmpDir, err := os.MkdirTemp("", "docsmith-pandoc-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, name)
	if err := httputil.DownloadFile(ctx, i.client, url, archive); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}

	dest := i.managedBin()
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating install directory: %w", err)
	}

	if filepath.Ext(name) == ".zip" {
		err = extractBinaryFromZip(archive, dest)
	} else {
		err = extractBinaryFromTarGz(archive, dest)
	}
	if err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

// archiveName returns the release asset name for the platform.
func (i *Installer) archiveName() (string, error) {
	switch i.goos {
	case "linux":
		return fmt.Sprintf("pandoc-%s-linux-%s.tar.gz", pandocVersion, i.goarch), nil
	case "darwin":
		arch := "x86_64"
		if i.goarch == "arm64" {
			arch = "arm64"
		}
		return fmt.Sprintf("pandoc-%s-%s-macOS.zip", pandocVersion, arch), nil
	case "windows":
		return fmt.Sprintf("pandoc-%s-windows-x86_64.zip", pandocVersion), nil
	}
	return "", fmt.Errorf("no pandoc release for %s/%s", i.goos, i.goarch)
}

// binaryEntry reports whether an archive member is the Pandoc binary. The
// layout varies across platforms, so match on the base name.
func binaryEntry(name string) bool {
	base := filepath.Base(filepath.ToSlash(name))
	return base == "pandoc" || base == "pandoc.exe"
}

func extractBinaryFromTarGz(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !binaryEntry(hdr.Name) {
			continue
		}
		return writeBinary(dest, tr)
	}
	return fmt.Errorf("pandoc binary not found in %s", filepath.Base(archive))
}

func extractBinaryFromZip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !binaryEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening archive member: %w", err)
		}
		defer rc.Close()
		return writeBinary(dest, rc)
	}
	return fmt.Errorf("pandoc binary not found in %s", filepath.Base(archive))
}

func writeBinary(dest string, r io.Reader) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	_, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", dest, closeErr)
	}
	return nil
}
