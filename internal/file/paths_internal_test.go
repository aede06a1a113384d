package file

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputDirFallsThrough(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A path under a regular file can never be created.
	bad := filepath.Join(blocker, "Downloads")
	good := filepath.Join(root, "downloads")

	if got := resolveOutputDir([]string{bad, good}); got != good {
		t.Fatalf("resolveOutputDir = %q, want %q", got, good)
	}
}

func TestResolveOutputDirFallsBackToCwd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got := resolveOutputDir([]string{filepath.Join(blocker, "a")}); got != cwd {
		t.Fatalf("resolveOutputDir = %q, want cwd %q", got, cwd)
	}
}
