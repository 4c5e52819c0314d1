//go:build mage

// Package main contains Mage build targets for imgshift developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "imgshift"
)

// Build compiles the application binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, "."); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite with race detection.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Run builds and starts the desktop application.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName))
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binDir)
}
