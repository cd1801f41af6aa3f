// Package testutil provides reusable testing helpers that enforce the
// repository's architectural boundaries: which packages may import which.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// AssertNoDirectImports scans all non-test .go files in dir (typically "."
// from within the package under test) and fails if any import path satisfies
// the forbidden predicate. Build tags are not followed.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	if len(viols) > 0 {
		t.Fatalf("forbidden direct imports (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}

// AssertImportsConfined loads every package matching pattern and fails when a
// package outside allowedPrefix imports a package under confinedPrefix. It is
// the guard behind "only the sink facade may reach the sink drivers" style
// rules.
func AssertImportsConfined(t testing.TB, pattern, confinedPrefix, allowedPrefix string, reason string) {
	t.Helper()
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) || strings.HasPrefix(pkg.PkgPath, confinedPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, confinedPrefix) {
				seen[pkg.PkgPath+" -> "+importPath] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return
	}
	viols := make([]string, 0, len(seen))
	for v := range seen {
		viols = append(viols, v)
	}
	sort.Strings(viols)
	t.Fatalf("confined imports escaped (%s):\n%s", reason, strings.Join(viols, "\n"))
}

// InternalImportForbidden matches any import path containing /internal/.
func InternalImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/")
}

func directImportViolations(dir string, forbidden func(importPath string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		fileAst, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range fileAst.Imports {
			ip := strings.Trim(imp.Path.Value, "\"")
			if forbidden(ip) {
				viols = append(viols, ip+" (in "+name+")")
			}
		}
	}
	return viols, nil
}
