// Package extract converts parsed Python syntax trees into the entity data
// model: function definitions, class definitions, and their fully-qualified
// dotted namespaces.
package extract

import "fmt"

// Context carries the enclosing scope names used to derive an entity's
// namespace. Callers supply at most one of the three; the extractor fills
// in ClassName itself when descending into a class body.
type Context struct {
	ModuleName  string
	PackageName string
	ClassName   string
}

// rootNamespace resolves the namespace prefix for entities created in this
// context: module over package over class, first non-empty wins.
func (c Context) rootNamespace() string {
	switch {
	case c.ModuleName != "":
		return c.ModuleName
	case c.PackageName != "":
		return c.PackageName
	case c.ClassName != "":
		return c.ClassName
	}
	return ""
}

// NamespaceError reports an entity constructed without enough context to
// derive a namespace. This is an invariant violation in the extraction
// pipeline, not a user-facing condition.
type NamespaceError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *NamespaceError) Error() string {
	return fmt.Sprintf("cannot derive namespace for %s %q: module, package, and class names are all empty", e.Kind, e.Name)
}

// FunctionDef is a Python function or method definition.
//
// At most one of ClassName, ModuleName, PackageName is set, identifying
// the scope the function was declared in. Namespace is always
// "{scope}.{name}".
type FunctionDef struct {
	Docstring   string `json:"docstring"`
	Name        string `json:"name"`
	Namespace   string `json:"namespace"`
	ClassName   string `json:"class_name"`
	ModuleName  string `json:"module_name"`
	PackageName string `json:"package_name"`
}

// NewFunctionDef constructs a FunctionDef, deriving its namespace from the
// context. Returns a NamespaceError if the context has no scope name set.
func NewFunctionDef(name, docstring string, ctx Context) (FunctionDef, error) {
	root := ctx.rootNamespace()
	if root == "" {
		return FunctionDef{}, &NamespaceError{Kind: "function", Name: name}
	}

	return FunctionDef{
		Docstring:   docstring,
		Name:        name,
		Namespace:   root + "." + name,
		ClassName:   ctx.ClassName,
		ModuleName:  ctx.ModuleName,
		PackageName: ctx.PackageName,
	}, nil
}

// ClassDef is a Python class definition. A class exclusively owns its
// methods; each method's namespace is prefixed by the class's own
// namespace, never by the enclosing module or package directly.
type ClassDef struct {
	Docstring   string        `json:"docstring"`
	Name        string        `json:"name"`
	Namespace   string        `json:"namespace"`
	ModuleName  string        `json:"module_name"`
	PackageName string        `json:"package_name"`
	Methods     []FunctionDef `json:"methods"`
}

// NewClassDef constructs a ClassDef, deriving its namespace from the
// context. Classes are only declared at module or package scope, so the
// context must carry one of those two names.
func NewClassDef(name, docstring string, ctx Context) (ClassDef, error) {
	root := ctx.ModuleName
	if root == "" {
		root = ctx.PackageName
	}
	if root == "" {
		return ClassDef{}, &NamespaceError{Kind: "class", Name: name}
	}

	return ClassDef{
		Docstring:   docstring,
		Name:        name,
		Namespace:   root + "." + name,
		ModuleName:  ctx.ModuleName,
		PackageName: ctx.PackageName,
		Methods:     []FunctionDef{},
	}, nil
}
