package library

import (
	"github.com/pydexlabs/pydex/internal/extract"
)

// CodeLibrary aggregates the top-level packages loaded during one
// extraction run and provides flattened traversal over everything
// reachable from them.
//
// Loading the same name twice is permitted and produces two independent
// subtrees; the library performs no deduplication.
type CodeLibrary struct {
	Packages []*Package `json:"packages"`

	loader *Loader
}

// New creates an empty library that loads packages through the given
// loader.
func New(loader *Loader) *CodeLibrary {
	return &CodeLibrary{
		Packages: []*Package{},
		loader:   loader,
	}
}

// Load loads a top-level package by dotted name and appends it to the
// library. The returned package is the same tree the library retains.
func (l *CodeLibrary) Load(name string) (*Package, error) {
	pkg, err := l.loader.Load(name)
	if err != nil {
		return nil, err
	}
	l.Packages = append(l.Packages, pkg)
	return pkg, nil
}

// AllPackages returns every package and subpackage, depth-first with
// parents before children, top-level packages in load order.
func (l *CodeLibrary) AllPackages() []*Package {
	var packages []*Package
	for _, pkg := range l.Packages {
		packages = append(packages, pkg.AllPackages()...)
	}
	return packages
}

// AllModules returns every module across all loaded packages.
func (l *CodeLibrary) AllModules() []*Module {
	var modules []*Module
	for _, pkg := range l.Packages {
		modules = append(modules, pkg.AllModules()...)
	}
	return modules
}

// AllClasses returns every class across all loaded packages.
func (l *CodeLibrary) AllClasses() []extract.ClassDef {
	var classes []extract.ClassDef
	for _, pkg := range l.Packages {
		classes = append(classes, pkg.AllClasses()...)
	}
	return classes
}

// AllFunctions returns every function and method across all loaded
// packages, in the package traversal order.
func (l *CodeLibrary) AllFunctions() []extract.FunctionDef {
	var functions []extract.FunctionDef
	for _, pkg := range l.Packages {
		functions = append(functions, pkg.AllFunctions()...)
	}
	return functions
}
