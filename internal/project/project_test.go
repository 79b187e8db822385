package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mkManifest(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFindManifest(t *testing.T) {
	dir := t.TempDir()
	path := mkManifest(t, dir, "[package]\nname = \"x\"\n")

	got, err := FindManifest(dir)
	if err != nil || got != path {
		t.Fatalf("FindManifest(dir) = %q, %v", got, err)
	}
	got, err = FindManifest(path)
	if err != nil || got != path {
		t.Fatalf("FindManifest(file) = %q, %v", got, err)
	}
	if _, err := FindManifest(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
	if _, err := FindManifest(filepath.Join(dir, "missing")); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestWorkspaceMembers(t *testing.T) {
	root := t.TempDir()
	rootManifest := mkManifest(t, root, `[workspace]
members = ["crates/*", "tools/cli", "missing"]
exclude = ["crates/legacy"]
`)
	mkManifest(t, filepath.Join(root, "crates", "beta"), "")
	mkManifest(t, filepath.Join(root, "crates", "alpha"), "")
	mkManifest(t, filepath.Join(root, "crates", "legacy"), "")
	mkManifest(t, filepath.Join(root, "tools", "cli"), "")
	if err := os.MkdirAll(filepath.Join(root, "crates", "docs"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := WorkspaceMembers(rootManifest)
	if err != nil {
		t.Fatalf("WorkspaceMembers: %v", err)
	}
	want := []string{
		filepath.Join(root, "crates", "alpha", ManifestName),
		filepath.Join(root, "crates", "beta", ManifestName),
		filepath.Join(root, "tools", "cli", ManifestName),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("members (-want +got):\n%s", diff)
	}
}

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	rootManifest := mkManifest(t, root, "[workspace]\nmembers = [\"a\"]\n")
	mkManifest(t, filepath.Join(root, "a"), "[package]\nname = \"a\"\n")

	got, ok, err := FindWorkspaceRoot(filepath.Join(root, "a"))
	if err != nil || !ok || got != rootManifest {
		t.Fatalf("FindWorkspaceRoot = %q, %v, %v", got, ok, err)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := DigestBytes([]byte("a")), DigestBytes([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine must be deterministic")
	}
}
