//go:build mage

// Package main contains Mage build targets for partcatalog developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the output directories a generation run writes into.
var projectDirs = []string{
	"data",
	"series_kicad_sym",
	"symbols",
	"connector_footprints.pretty",
}

// Init creates the output directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Output directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "partcatalog"
	cmdPkg  = "./cmd/partcatalog"
)

func binPath() string { return filepath.Join(binDir, binName) }

// Build compiles the CLI binary into bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", binPath(), version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Gen groups the generation targets.
type Gen mg.Namespace

// Resistors generates every resistor series.
func (Gen) Resistors() error { return generate("resistors") }

// Capacitors generates every capacitor series.
func (Gen) Capacitors() error { return generate("capacitors") }

// Connectors generates every connector series and its footprints.
func (Gen) Connectors() error { return generate("connectors") }

// Inductors generates every inductor series.
func (Gen) Inductors() error { return generate("inductors") }

// All generates every family.
func (Gen) All() error { return generate("all") }

func generate(target string) error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath(), target)
}

// Serve builds the CLI and browses the generated catalogs.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}

// Clean removes the binary and every generated artifact.
func Clean() error {
	for _, dir := range append([]string{binDir}, projectDirs...) {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and generated part counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	parts, err := countCSVRows("data", "UNITED_*_DATA_BASE.csv")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Part numbers (unified CSVs):    %d\n", parts)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || (d.Name() != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countCSVRows counts data rows, excluding headers, in CSVs matching glob
// under dir. A missing dir counts as zero.
func countCSVRows(dir, glob string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		lines := strings.Count(string(data), "\n")
		if lines > 0 {
			total += lines - 1
		}
	}
	return total, nil
}
