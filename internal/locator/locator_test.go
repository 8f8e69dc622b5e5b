package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("# placeholder\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocateReturnsFirstRoot(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writeFile(t, filepath.Join(root1, "demo", "__init__.py"))
	writeFile(t, filepath.Join(root2, "demo", "__init__.py"))

	loc := New([]string{root1, root2})

	got, err := loc.Locate(filepath.Join("demo", "__init__.py"))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	want := filepath.Join(root1, "demo", "__init__.py")
	if got != want {
		t.Errorf("Locate = %q, want %q", got, want)
	}
}

func TestLocateNotFound(t *testing.T) {
	loc := New([]string{t.TempDir()})

	_, err := loc.Locate(filepath.Join("missing", "__init__.py"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.Path != filepath.Join("missing", "__init__.py") {
		t.Errorf("NotFoundError.Path = %q", notFound.Path)
	}
}

func TestLocateSkipsDirectories(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()

	// In root1 the probed path exists but is a directory.
	if err := os.MkdirAll(filepath.Join(root1, "demo", "__init__.py"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root2, "demo", "__init__.py"))

	loc := New([]string{root1, root2})

	got, err := loc.Locate(filepath.Join("demo", "__init__.py"))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	want := filepath.Join(root2, "demo", "__init__.py")
	if got != want {
		t.Errorf("Locate = %q, want %q", got, want)
	}
}

func TestLocateRelativeRootReturnsAbsolutePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "demo", "__init__.py"))
	t.Chdir(filepath.Dir(root))

	loc := New([]string{filepath.Base(root)})

	got, err := loc.Locate(filepath.Join("demo", "__init__.py"))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Locate = %q, want an absolute path", got)
	}
	want := filepath.Join(root, "demo", "__init__.py")
	if got != want {
		t.Errorf("Locate = %q, want %q", got, want)
	}
}

func TestNewFiltersMissingRoots(t *testing.T) {
	real := t.TempDir()
	loc := New([]string{filepath.Join(real, "does-not-exist"), real})

	roots := loc.Roots()
	if len(roots) != 1 || roots[0] != real {
		t.Errorf("Roots = %v, want [%s]", roots, real)
	}
}
