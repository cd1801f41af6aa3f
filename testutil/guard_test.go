package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nimport _ \"plantforge/internal/core\"\n")
	writeFile(t, dir, "a_test.go", "package a\n\nimport _ \"plantforge/internal/sink\"\n")
	viols, err := directImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 {
		t.Fatalf("expected one violation (test files ignored), got %v", viols)
	}
	if !strings.Contains(viols[0], "plantforge/internal/core") {
		t.Fatalf("unexpected violation %q", viols[0])
	}
}

func TestDirectImportViolationsCleanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", "package b\n\nimport \"fmt\"\n\nvar _ = fmt.Sprintf\n")
	viols, err := directImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 0 {
		t.Fatalf("expected no violations, got %v", viols)
	}
}

func TestInternalImportForbidden(t *testing.T) {
	if !InternalImportForbidden("plantforge/internal/sink") {
		t.Fatalf("internal path must be forbidden")
	}
	if InternalImportForbidden("plantforge/pkg/domain") {
		t.Fatalf("pkg path must be allowed")
	}
}
