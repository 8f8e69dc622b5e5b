// Package library holds the loaded code model: modules, packages, and the
// top-level CodeLibrary aggregate, plus the recursive loader that builds
// them from source trees on a search path.
package library

import (
	"github.com/pydexlabs/pydex/internal/extract"
	"github.com/pydexlabs/pydex/internal/parser"
)

// Module is one Python source file: its docstring and the classes and
// functions declared at top level, in source order. Methods live under
// their ClassDef, not in Functions.
type Module struct {
	Namespace   string                `json:"namespace"`
	Docstring   string                `json:"docstring"`
	Classes     []extract.ClassDef    `json:"classes"`
	Functions   []extract.FunctionDef `json:"functions"`
	PackageName string                `json:"package_name"`
}

// LoadModule reads and parses one source file and extracts its entities.
// The module namespace is supplied by the caller (it includes any package
// prefix). A file that does not parse cleanly fails the load; there is no
// partial extraction.
func LoadModule(p *parser.Parser, path, namespace, packageName string) (*Module, error) {
	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	if err := result.SyntaxError(); err != nil {
		return nil, err
	}

	ext := extract.NewExtractor(result)
	ctx := extract.Context{ModuleName: namespace}

	classes, err := ext.Classes(ctx)
	if err != nil {
		return nil, err
	}
	functions, err := ext.Functions(ctx)
	if err != nil {
		return nil, err
	}

	return &Module{
		Namespace:   namespace,
		Docstring:   ext.ModuleDocstring(),
		Classes:     classes,
		Functions:   functions,
		PackageName: packageName,
	}, nil
}

// AllClasses returns the module's classes in source order.
func (m *Module) AllClasses() []extract.ClassDef {
	return m.Classes
}

// AllFunctions returns the module's top-level functions followed by every
// class's methods, preserving source order within each group.
func (m *Module) AllFunctions() []extract.FunctionDef {
	functions := make([]extract.FunctionDef, 0, len(m.Functions))
	functions = append(functions, m.Functions...)
	for _, class := range m.Classes {
		functions = append(functions, class.Methods...)
	}
	return functions
}
