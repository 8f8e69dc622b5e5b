package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DocNode returns the string node holding the docstring for a module,
// class_definition, or function_definition node, or nil if the entity has
// no docstring. The docstring is the leading string expression of the
// entity's body, matching Python convention. Implicitly concatenated
// literals count: the whole concatenated_string node is the doc node.
func DocNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}

	var body *sitter.Node
	switch node.Type() {
	case "module":
		body = node
	case "function_definition", "class_definition":
		body = node.ChildByFieldName("body")
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			return DocNode(def)
		}
		return nil
	default:
		return nil
	}

	if body == nil {
		return nil
	}

	stmt := firstStatement(body)
	if stmt == nil || stmt.Type() != "expression_statement" {
		return nil
	}
	str := stmt.NamedChild(0)
	if str == nil {
		return nil
	}
	switch str.Type() {
	case "string", "concatenated_string":
		return str
	}
	return nil
}

// Docstring returns the docstring text for a node, quote characters
// included, or the empty string if the node has none. The raw literal is
// kept as-is: stripping quotes or dedenting is left to consumers.
func (r *ParseResult) Docstring(node *sitter.Node) string {
	doc := DocNode(node)
	if doc == nil {
		return ""
	}
	return r.NodeText(doc)
}

// firstStatement returns the first named child of a block that is not a
// comment.
func firstStatement(body *sitter.Node) *sitter.Node {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		return child
	}
	return nil
}
