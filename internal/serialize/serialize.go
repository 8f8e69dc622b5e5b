// Package serialize writes a loaded code library to a directory of JSON
// documents: one file per package, module, class, and function, plus a
// library manifest.
package serialize

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pydexlabs/pydex/internal/library"
)

// Subdirectory names for each entity category.
const (
	PackageDir  = "pkg"
	ModuleDir   = "mod"
	ClassDir    = "cls"
	FunctionDir = "def"
)

// ManifestName is the library summary document written at the target root.
const ManifestName = "library.json"

// Writer serializes code libraries to disk.
type Writer struct {
	log *logrus.Logger
}

// NewWriter creates a writer that logs progress to the given logger.
func NewWriter(log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.New()
	}
	return &Writer{log: log}
}

// Write serializes every entity reachable from the library into targetDir,
// creating the directory tree as needed. Existing documents are
// overwritten; documents from entities that no longer exist are not
// cleaned up. Any filesystem error aborts the write, potentially leaving
// the target partially populated.
func (w *Writer) Write(lib *library.CodeLibrary, targetDir string) error {
	w.log.WithField("dir", targetDir).Info("serializing code library")

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating target directory %s", targetDir)
	}
	for _, sub := range []string{PackageDir, ModuleDir, ClassDir, FunctionDir} {
		if err := os.MkdirAll(filepath.Join(targetDir, sub), 0o755); err != nil {
			return errors.Wrapf(err, "creating %s directory", sub)
		}
	}

	for _, pkg := range lib.AllPackages() {
		path := filepath.Join(targetDir, PackageDir, pkg.Name+".json")
		if err := writeDoc(path, packageDocFor(pkg)); err != nil {
			return err
		}
	}

	for _, module := range lib.AllModules() {
		path := filepath.Join(targetDir, ModuleDir, module.Namespace+".json")
		if err := writeDoc(path, moduleDocFor(module)); err != nil {
			return err
		}
	}

	for _, class := range lib.AllClasses() {
		path := filepath.Join(targetDir, ClassDir, class.Namespace+".json")
		if err := writeDoc(path, class); err != nil {
			return err
		}
	}

	for _, function := range lib.AllFunctions() {
		path := filepath.Join(targetDir, FunctionDir, function.Namespace+".json")
		if err := writeDoc(path, function); err != nil {
			return err
		}
	}

	manifest := manifestFor(lib)
	if err := writeDoc(filepath.Join(targetDir, ManifestName), manifest); err != nil {
		return err
	}

	w.log.WithFields(logrus.Fields{
		"dir":      targetDir,
		"packages": len(manifest.Packages),
	}).Info("serialized code library")

	return nil
}

// writeDoc marshals a document pretty-printed and writes it, overwriting
// any existing file.
func writeDoc(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
