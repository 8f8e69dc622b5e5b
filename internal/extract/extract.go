package extract

import (
	"github.com/pydexlabs/pydex/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor extracts entity definitions from a parsed syntax tree.
type Extractor struct {
	result *parser.ParseResult
}

// NewExtractor creates an extractor for the given parse result.
func NewExtractor(result *parser.ParseResult) *Extractor {
	return &Extractor{result: result}
}

// ModuleDocstring returns the docstring of the parsed module, or the empty
// string if the module has none.
func (e *Extractor) ModuleDocstring() string {
	return e.result.Docstring(e.result.Root)
}

// Functions extracts the top-level function definitions of the module in
// source order. Methods are not included; they belong to their class.
func (e *Extractor) Functions(ctx Context) ([]FunctionDef, error) {
	return e.functionsIn(e.result.Root, ctx)
}

// Classes extracts the top-level class definitions of the module in source
// order, each with its directly-declared methods. Method namespaces are
// derived from the class's own namespace, so a method `bar` on class
// `pkg.mod.Baz` gets namespace `pkg.mod.Baz.bar`.
func (e *Extractor) Classes(ctx Context) ([]ClassDef, error) {
	classes := []ClassDef{}

	for _, node := range topLevelDefinitions(e.result.Root, "class_definition") {
		class, err := e.extractClass(node, ctx)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, nil
}

// functionsIn extracts the function definitions that are direct children
// of the given scope node (a module root or a class body block).
func (e *Extractor) functionsIn(scope *sitter.Node, ctx Context) ([]FunctionDef, error) {
	functions := []FunctionDef{}

	for _, node := range topLevelDefinitions(scope, "function_definition") {
		name := e.definitionName(node)
		if name == "" {
			continue
		}
		fn, err := NewFunctionDef(name, e.result.Docstring(node), ctx)
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}

	return functions, nil
}

// extractClass builds a ClassDef and its methods from a class_definition
// node.
func (e *Extractor) extractClass(node *sitter.Node, ctx Context) (ClassDef, error) {
	name := e.definitionName(node)
	class, err := NewClassDef(name, e.result.Docstring(node), ctx)
	if err != nil {
		return ClassDef{}, err
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		methods, err := e.functionsIn(body, Context{ClassName: class.Namespace})
		if err != nil {
			return ClassDef{}, err
		}
		class.Methods = append(class.Methods, methods...)
	}

	return class, nil
}

// definitionName returns the declared identifier of a function or class
// definition node.
func (e *Extractor) definitionName(node *sitter.Node) string {
	return e.result.NodeText(node.ChildByFieldName("name"))
}

// topLevelDefinitions returns the direct children of scope with the given
// node type, in source order. Definitions wrapped in a decorator are
// unwrapped so that `@decorated` functions and classes are still found.
// Nested scopes are not descended into.
func topLevelDefinitions(scope *sitter.Node, nodeType string) []*sitter.Node {
	var nodes []*sitter.Node

	for i := 0; i < int(scope.NamedChildCount()); i++ {
		child := scope.NamedChild(i)
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Type() == nodeType {
			nodes = append(nodes, child)
		}
	}

	return nodes
}
