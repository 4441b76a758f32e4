// Package funcname derives display names for JavaScript function nodes.
package funcname

import sitter "github.com/smacker/go-tree-sitter"

// Anonymous is returned when no rule yields a name.
const Anonymous = "anonymous"

const (
	nodeFunctionDeclaration          = "function_declaration"
	nodeGeneratorFunctionDeclaration = "generator_function_declaration"
	nodeAssignmentExpression         = "assignment_expression"
	nodeVariableDeclarator           = "variable_declarator"
	nodeParenthesizedExpression      = "parenthesized_expression"
	nodeIdentifier                   = "identifier"
)

// Resolve returns the name of a function node. The first matching rule wins:
// a declaration's own name, the identifier on the left of an enclosing
// assignment, the identifier bound by an enclosing variable declarator, and
// finally Anonymous.
func Resolve(node *sitter.Node, src []byte) string {
	if node == nil {
		return Anonymous
	}

	switch node.Type() {
	case nodeFunctionDeclaration, nodeGeneratorFunctionDeclaration:
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(src)
		}
	}

	parent := SyntacticParent(node)
	if parent == nil {
		return Anonymous
	}

	switch parent.Type() {
	case nodeAssignmentExpression:
		if left := parent.ChildByFieldName("left"); left != nil && left.Type() == nodeIdentifier {
			return left.Content(src)
		}
	case nodeVariableDeclarator:
		if name := parent.ChildByFieldName("name"); name != nil && name.Type() == nodeIdentifier {
			return name.Content(src)
		}
	}
	return Anonymous
}

// SyntacticParent returns the parent of node, looking through parentheses so
// that `const f = (() => {})` binds the same way as `const f = () => {}`.
func SyntacticParent(node *sitter.Node) *sitter.Node {
	parent := node.Parent()
	for parent != nil && parent.Type() == nodeParenthesizedExpression {
		parent = parent.Parent()
	}
	return parent
}
