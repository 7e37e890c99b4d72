//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "speakeasy"
	mainPkg    = "./cmd/speakeasy"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the speakeasy binary into the repository root
func Build() error {
	return sh.RunV("go", "build", "-o", binaryName, mainPkg)
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// NetworkTest runs the tests that call the real translation endpoints
func NetworkTest() error {
	return sh.RunWithV(map[string]string{"SPEAKEASY_NETWORK_TESTS": "1"}, "go", "test", "./internal/translation/...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Vet)
	return sh.RunV("go", "install", mainPkg)
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binaryName); err != nil {
		return err
	}
	matches, _ := filepath.Glob("*.mp3")
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}
