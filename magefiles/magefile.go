//go:build mage

// Package main provides build targets for the journal project using Mage.
//
// Usage:
//
//	mage build          Compile the journal binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run tests and write coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install journal to GOPATH/bin
//	mage stats          Print Go lines of code
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binLint     = "golangci-lint"
	binaryName  = "journal"
	binaryDir   = "bin"
	cmdDir      = "./cmd/journal"
	versionVar  = "github.com/mesh-intelligence/journal/pkg/journal.Version"
	coverOutput = "coverage.out"
)

// Build compiles the journal binary to bin/. Set JOURNAL_VERSION to stamp
// a release version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("JOURNAL_VERSION"); v != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X %s=%s", versionVar, v))
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs every test and writes a coverage profile.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverOutput, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverOutput)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverOutput); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Stats prints Go lines of code split into production and test code.
func Stats() error {
	var prodLines, testLines int

	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += count
		} else {
			prodLines += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
