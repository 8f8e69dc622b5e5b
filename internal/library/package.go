package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pydexlabs/pydex/internal/extract"
	"github.com/pydexlabs/pydex/internal/locator"
	"github.com/pydexlabs/pydex/internal/parser"
)

// InitFileName marks a directory as a Python package.
const InitFileName = "__init__.py"

// Package is a Python package: a directory with an __init__.py file.
//
// The classes and functions declared in the package's own __init__.py are
// hoisted onto the Package itself, namespaced as "{package}.{name}". Every
// other .py file in the directory becomes a sibling Module, and every
// subdirectory with its own __init__.py becomes a subpackage. The whole
// subtree is loaded eagerly; a Package is never partially populated.
type Package struct {
	Name        string                `json:"name"`
	Docstring   string                `json:"docstring"`
	PackageName string                `json:"package_name"`
	Functions   []extract.FunctionDef `json:"functions"`
	Classes     []extract.ClassDef    `json:"classes"`
	Modules     []*Module             `json:"modules"`
	Subpackages []*Package            `json:"subpackages"`
}

// Loader builds Package trees by resolving dotted names against a search
// path and recursively discovering sibling modules and subpackages.
type Loader struct {
	locator *locator.Locator
	parser  *parser.Parser
	log     *logrus.Logger
}

// NewLoader creates a loader over the given locator and parser.
func NewLoader(loc *locator.Locator, p *parser.Parser, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{locator: loc, parser: p, log: log}
}

// Load resolves a dotted package name and eagerly loads its entire
// subtree. Any missing __init__.py, unreadable file, or syntax error
// aborts the whole load; nothing partial is returned.
func (l *Loader) Load(name string) (*Package, error) {
	return l.load(name, "", make(map[string]bool))
}

func (l *Loader) load(name, parentName string, visited map[string]bool) (*Package, error) {
	relPath := filepath.Join(append(strings.Split(name, "."), InitFileName)...)
	initPath, err := l.locator.Locate(relPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(initPath)
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		realDir = dir
	}
	if visited[realDir] {
		return nil, fmt.Errorf("symlink loop: %s already visited while loading %s", realDir, name)
	}
	visited[realDir] = true

	l.log.WithField("package", name).Debug("loading package")

	pkg, err := l.loadInitFile(initPath, name, parentName)
	if err != nil {
		return nil, err
	}

	if pkg.Modules, err = l.loadModules(dir, name); err != nil {
		return nil, err
	}
	if pkg.Subpackages, err = l.loadSubpackages(dir, name, visited); err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"package":     name,
		"modules":     len(pkg.Modules),
		"subpackages": len(pkg.Subpackages),
	}).Debug("loaded package")

	return pkg, nil
}

// loadInitFile parses a package's own __init__.py and hoists its
// declarations onto the Package. Entities are extracted with the package
// name as their context, so their namespaces are package-qualified from
// the moment they are constructed; nothing is rewritten afterwards.
func (l *Loader) loadInitFile(path, name, parentName string) (*Package, error) {
	result, err := l.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	if err := result.SyntaxError(); err != nil {
		return nil, err
	}

	ext := extract.NewExtractor(result)
	ctx := extract.Context{PackageName: name}

	classes, err := ext.Classes(ctx)
	if err != nil {
		return nil, err
	}
	functions, err := ext.Functions(ctx)
	if err != nil {
		return nil, err
	}

	return &Package{
		Name:        name,
		Docstring:   ext.ModuleDocstring(),
		PackageName: parentName,
		Functions:   functions,
		Classes:     classes,
		Modules:     []*Module{},
		Subpackages: []*Package{},
	}, nil
}

// loadModules loads every sibling .py file in the package directory,
// excluding dunder files such as __init__.py and __main__.py. Names are
// sorted so output is reproducible across platforms.
func (l *Loader) loadModules(dir, packageName string) ([]*Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing package directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".py") || strings.HasPrefix(name, "__") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	modules := make([]*Module, 0, len(names))
	for _, name := range names {
		stem := strings.TrimSuffix(name, ".py")
		namespace := packageName + "." + stem
		module, err := LoadModule(l.parser, filepath.Join(dir, name), namespace, packageName)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}

	return modules, nil
}

// loadSubpackages recursively loads every subdirectory that carries its
// own __init__.py, in sorted order.
func (l *Loader) loadSubpackages(dir, packageName string, visited map[string]bool) ([]*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing package directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		initPath := filepath.Join(dir, entry.Name(), InitFileName)
		if info, err := os.Stat(initPath); err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	subpackages := make([]*Package, 0, len(names))
	for _, name := range names {
		sub, err := l.load(packageName+"."+name, packageName, visited)
		if err != nil {
			return nil, err
		}
		subpackages = append(subpackages, sub)
	}

	return subpackages, nil
}

// AllPackages returns this package followed by all its subpackages,
// depth-first in discovery order.
func (p *Package) AllPackages() []*Package {
	packages := []*Package{p}
	for _, sub := range p.Subpackages {
		packages = append(packages, sub.AllPackages()...)
	}
	return packages
}

// AllModules returns every module in this package's subtree, siblings
// before subpackage recursion.
func (p *Package) AllModules() []*Module {
	modules := make([]*Module, 0, len(p.Modules))
	modules = append(modules, p.Modules...)
	for _, sub := range p.Subpackages {
		modules = append(modules, sub.AllModules()...)
	}
	return modules
}

// AllClasses returns every class in this package's subtree: hoisted
// classes first, then sibling modules' classes, then subpackages.
func (p *Package) AllClasses() []extract.ClassDef {
	classes := make([]extract.ClassDef, 0, len(p.Classes))
	classes = append(classes, p.Classes...)
	for _, module := range p.Modules {
		classes = append(classes, module.AllClasses()...)
	}
	for _, sub := range p.Subpackages {
		classes = append(classes, sub.AllClasses()...)
	}
	return classes
}

// AllFunctions returns every function in this package's subtree: hoisted
// functions, then hoisted classes' methods, then sibling modules, then
// subpackages.
func (p *Package) AllFunctions() []extract.FunctionDef {
	functions := make([]extract.FunctionDef, 0, len(p.Functions))
	functions = append(functions, p.Functions...)
	for _, class := range p.Classes {
		functions = append(functions, class.Methods...)
	}
	for _, module := range p.Modules {
		functions = append(functions, module.AllFunctions()...)
	}
	for _, sub := range p.Subpackages {
		functions = append(functions, sub.AllFunctions()...)
	}
	return functions
}
