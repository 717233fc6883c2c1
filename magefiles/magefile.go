//go:build mage

// Package main contains Mage build targets for d2b developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "d2b"
	cmdPkg  = "./cmd/d2b"
)

// ldflags stamps the version from D2B_VERSION, falling back to "dev".
func ldflags() string {
	v := os.Getenv("D2B_VERSION")
	if v == "" {
		v = "dev"
	}
	return "-X main.version=" + v
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Install installs d2b into GOBIN after the tests pass.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "-ldflags", ldflags(), cmdPkg)
}

// Smoke builds the binary and resolves a known arXiv ID and DOI against
// the live services.
func Smoke() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)
	for _, id := range []string{"1312.6114", "10.1051/0004-6361/202245405"} {
		if err := sh.RunV(bin, "--plain", id); err != nil {
			return fmt.Errorf("resolving %s: %w", id, err)
		}
	}
	return nil
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints Go production and test line counts.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines counts non-blank lines in .go files under root, split
// into production and test files. Dot directories and underscore
// directories are skipped, as the go tool does.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				n++
			}
		}
		if strings.HasSuffix(name, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}
