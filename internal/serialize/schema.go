package serialize

import (
	"github.com/pydexlabs/pydex/internal/extract"
	"github.com/pydexlabs/pydex/internal/library"
)

// Per-category documents trim fields that would duplicate information
// already carried by directory placement or by other documents. The full
// class and function trees are written to the flat cls/ and def/
// directories, so the nested views inside package and module documents
// only keep what a reader needs for orientation.

// classSummary is a class as embedded in a module document: the
// module/package back-references are implied by the enclosing document.
type classSummary struct {
	Docstring string                `json:"docstring"`
	Name      string                `json:"name"`
	Namespace string                `json:"namespace"`
	Methods   []extract.FunctionDef `json:"methods"`
}

// moduleDoc is the document written under mod/.
type moduleDoc struct {
	Namespace   string                `json:"namespace"`
	Docstring   string                `json:"docstring"`
	Classes     []classSummary        `json:"classes"`
	Functions   []extract.FunctionDef `json:"functions"`
	PackageName string                `json:"package_name"`
}

// moduleSummary is a module as embedded in a package document; its
// classes are omitted since they are fully serialized elsewhere.
type moduleSummary struct {
	Namespace   string                `json:"namespace"`
	Docstring   string                `json:"docstring"`
	Functions   []extract.FunctionDef `json:"functions"`
	PackageName string                `json:"package_name"`
}

// packageSummary is a subpackage as embedded in its parent's document,
// with the recursive parts (modules, classes, subpackages) omitted to
// avoid triple-serializing data already written to the flat directories.
type packageSummary struct {
	Name        string                `json:"name"`
	Docstring   string                `json:"docstring"`
	PackageName string                `json:"package_name"`
	Functions   []extract.FunctionDef `json:"functions"`
}

// packageDoc is the document written under pkg/.
type packageDoc struct {
	Name        string                `json:"name"`
	Docstring   string                `json:"docstring"`
	PackageName string                `json:"package_name"`
	Functions   []extract.FunctionDef `json:"functions"`
	Classes     []extract.ClassDef    `json:"classes"`
	Modules     []moduleSummary       `json:"modules"`
	Subpackages []packageSummary      `json:"subpackages"`
}

// manifest is the library.json document: top-level package names only.
type manifest struct {
	Packages []manifestEntry `json:"packages"`
}

type manifestEntry struct {
	Name string `json:"name"`
}

func classSummaryFor(class extract.ClassDef) classSummary {
	return classSummary{
		Docstring: class.Docstring,
		Name:      class.Name,
		Namespace: class.Namespace,
		Methods:   class.Methods,
	}
}

func moduleDocFor(module *library.Module) moduleDoc {
	classes := make([]classSummary, 0, len(module.Classes))
	for _, class := range module.Classes {
		classes = append(classes, classSummaryFor(class))
	}
	return moduleDoc{
		Namespace:   module.Namespace,
		Docstring:   module.Docstring,
		Classes:     classes,
		Functions:   module.Functions,
		PackageName: module.PackageName,
	}
}

func packageDocFor(pkg *library.Package) packageDoc {
	modules := make([]moduleSummary, 0, len(pkg.Modules))
	for _, module := range pkg.Modules {
		modules = append(modules, moduleSummary{
			Namespace:   module.Namespace,
			Docstring:   module.Docstring,
			Functions:   module.Functions,
			PackageName: module.PackageName,
		})
	}

	subpackages := make([]packageSummary, 0, len(pkg.Subpackages))
	for _, sub := range pkg.Subpackages {
		subpackages = append(subpackages, packageSummary{
			Name:        sub.Name,
			Docstring:   sub.Docstring,
			PackageName: sub.PackageName,
			Functions:   sub.Functions,
		})
	}

	return packageDoc{
		Name:        pkg.Name,
		Docstring:   pkg.Docstring,
		PackageName: pkg.PackageName,
		Functions:   pkg.Functions,
		Classes:     pkg.Classes,
		Modules:     modules,
		Subpackages: subpackages,
	}
}

func manifestFor(lib *library.CodeLibrary) manifest {
	entries := make([]manifestEntry, 0, len(lib.Packages))
	for _, pkg := range lib.Packages {
		entries = append(entries, manifestEntry{Name: pkg.Name})
	}
	return manifest{Packages: entries}
}
