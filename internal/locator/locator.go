// Package locator resolves relative source paths against an ordered list
// of search roots, the way the Python interpreter resolves imports against
// sys.path.
package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvSearchPath is the environment variable holding additional search
// roots, separated by the platform list separator.
const EnvSearchPath = "PYDEXPATH"

// NotFoundError is returned when a file exists under none of the
// configured search roots.
type NotFoundError struct {
	Path  string
	Roots []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in search path [%s]", e.Path, strings.Join(e.Roots, ", "))
}

// Locator probes an ordered list of root directories for files.
// The root list is fixed at construction; there is no process-wide state.
type Locator struct {
	roots []string
}

// New creates a Locator over the given roots. Entries that are not
// existing directories are dropped, preserving order.
func New(roots []string) *Locator {
	kept := make([]string, 0, len(roots))
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		kept = append(kept, root)
	}
	return &Locator{roots: kept}
}

// DefaultRoots returns the search roots from the environment: every entry
// of PYDEXPATH followed by the current working directory.
func DefaultRoots() []string {
	var roots []string
	if env := os.Getenv(EnvSearchPath); env != "" {
		roots = append(roots, filepath.SplitList(env)...)
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}
	return roots
}

// Roots returns the root directories the locator probes, in order.
func (l *Locator) Roots() []string {
	return l.roots
}

// Locate finds relPath under the first root that contains it as a regular
// file and returns the absolute path, even when the root itself is
// relative. Returns a NotFoundError if no root contains the file. Probing
// is read-only.
func (l *Locator) Locate(relPath string) (string, error) {
	for _, root := range l.roots {
		candidate := filepath.Join(root, relPath)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", candidate, err)
		}
		return abs, nil
	}
	return "", &NotFoundError{Path: relPath, Roots: l.roots}
}
