//go:build mage

// Package main contains Mage build targets for docsmith developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir = "bin"
	cmdPkg = "./cmd/docsmith"
)

func binName() string {
	if runtime.GOOS == "windows" {
		return "docsmith.exe"
	}
	return "docsmith"
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName())
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return err
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet and checks gofmt over the tree.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed:\n%s", out)
	}
	return nil
}

// Install builds and installs the CLI into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", cmdPkg)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binDir)
}
