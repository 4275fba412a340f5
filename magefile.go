//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target builds the binary.
var Default = Build

// Build compiles the bearwrap binary into bin/.
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", "bin/bearwrap", "./cmd/bearwrap")
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet and, when installed, staticcheck.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("staticcheck", "-version"); err != nil {
		fmt.Println("staticcheck not installed, skipping")
		return nil
	}
	return sh.RunV("staticcheck", "./...")
}

// QA runs lint and tests.
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
