// Package parser provides tree-sitter based parsing of Python source files.
//
// The parser package wraps the tree-sitter library behind a small interface:
// parse a file or byte slice, get back the syntax tree plus helpers to read
// node text and locate docstring nodes. Everything downstream (extraction,
// package loading) consumes this package's output and never touches the
// Python grammar directly.
package parser

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser configured for Python.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed syntax tree and metadata.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root (module) node of the tree.
	Root *sitter.Node
	// Source is the original source text that was parsed.
	Source []byte
	// FilePath is the path to the source file (empty for in-memory parsing).
	FilePath string
}

// New creates a parser configured for Python source.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source text and returns the syntax tree.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}

	return &ParseResult{
		Tree:   tree,
		Root:   tree.RootNode(),
		Source: source,
	}, nil
}

// ParseFile parses a source file from disk.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	result, err := p.Parse(source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}

	result.FilePath = path
	return result, nil
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors returns true if the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// SyntaxError returns a ParseError describing the first ERROR node in the
// tree, or nil if the tree parsed cleanly. Tree-sitter always produces a
// tree, so malformed source surfaces as ERROR nodes rather than a failed
// parse; callers treat any ERROR node as fatal for the file.
func (r *ParseResult) SyntaxError() error {
	if !r.HasErrors() {
		return nil
	}

	pe := &ParseError{
		Message: "invalid syntax",
		File:    r.FilePath,
	}
	if errNode := findErrorNode(r.Root); errNode != nil {
		pe.Line = errNode.StartPoint().Row + 1
		pe.Column = errNode.StartPoint().Column
	}
	return pe
}

// findErrorNode locates the first ERROR or MISSING node depth-first.
func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if found := findErrorNode(node.Child(int(i))); found != nil {
			return found
		}
	}
	return node
}

// NodeText returns the source text for a node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	if node == nil || r.Source == nil {
		return ""
	}
	return node.Content(r.Source)
}
