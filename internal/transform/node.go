package transform

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"depwarn/internal/funcname"
	"depwarn/internal/warning"

	sitter "github.com/smacker/go-tree-sitter"
)

// tree-sitter-javascript node types.
const (
	nodeArrowFunction                = "arrow_function"
	nodeFunction                     = "function"
	nodeFunctionExpression           = "function_expression"
	nodeGeneratorFunction            = "generator_function"
	nodeFunctionDeclaration          = "function_declaration"
	nodeGeneratorFunctionDeclaration = "generator_function_declaration"
	nodeExportStatement              = "export_statement"
	nodeStatementBlock               = "statement_block"
	nodeExpressionStatement          = "expression_statement"
	nodeArguments                    = "arguments"
	nodeString                       = "string"
	nodeComment                      = "comment"
)

// Position is a start position in JavaScript terms: 1-based line and
// 0-based column counted in UTF-16 code units.
type Position struct {
	Line   int
	Column int
}

// FunctionNode is the view of a function handed to handlers. It exposes read
// access to the node and a single mutation.
type FunctionNode interface {
	// Kind is the tree-sitter node type.
	Kind() string
	// Name is the display name, see funcname.Resolve.
	Name() string
	// Start is the position of the first character of the function.
	Start() Position
	// LeadingComments returns the raw text of the comments documenting the
	// function, in source order.
	LeadingComments() []string
	// Prepend inserts statements, in order, at the start of the body.
	Prepend(statements ...warning.Statement)
}

type functionNode struct {
	node  *sitter.Node
	src   []byte
	edits *editList
}

func (f *functionNode) Kind() string {
	return f.node.Type()
}

func (f *functionNode) Name() string {
	return funcname.Resolve(f.node, f.src)
}

func (f *functionNode) Start() Position {
	p := f.node.StartPoint()
	start := int(f.node.StartByte())
	lineStart := start - int(p.Column)
	return Position{
		Line:   int(p.Row) + 1,
		Column: utf16Len(f.src[lineStart:start]),
	}
}

func (f *functionNode) LeadingComments() []string {
	b := commentBearer(f.node)
	if b == nil {
		return nil
	}
	comments := leadingComments(b)
	if len(comments) == 0 && b.Parent() != nil && b.Parent().Type() == nodeExportStatement {
		comments = leadingComments(b.Parent())
	}
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Content(f.src))
	}
	return out
}

func (f *functionNode) Prepend(statements ...warning.Statement) {
	if len(statements) == 0 {
		return
	}
	body := f.node.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() == nodeStatementBlock {
		f.prependToBlock(body, statements)
		return
	}
	f.wrapExpressionBody(body, statements)
}

// prependToBlock inserts the statements right after the opening brace, or
// after the directive prologue when the block has one. A block that already
// starts with the same statements is left alone so repeated runs do not stack
// warnings.
func (f *functionNode) prependToBlock(body *sitter.Node, statements []warning.Statement) {
	lastDirective, next := directivePrologue(body)
	if blockStartsWith(body, next, f.src, statements) {
		return
	}

	open := int(body.StartByte())
	at := open + 1
	if lastDirective != nil {
		at = int(lastDirective.EndByte())
	}
	outer := lineIndent(f.src, open)
	inner := outer + "  "
	var first *sitter.Node
	if body.NamedChildCount() > 0 {
		first = body.NamedChild(0)
		if first.StartPoint().Row != body.StartPoint().Row {
			inner = lineIndent(f.src, int(first.StartByte()))
		}
	}

	var b strings.Builder
	for _, s := range statements {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(s.String())
	}
	if first == nil && body.EndPoint().Row == body.StartPoint().Row {
		b.WriteString("\n")
		b.WriteString(outer)
	}
	f.edits.insert(at, b.String(), false)
}

// wrapExpressionBody turns `() => expr` into `() => { ...; return expr; }`.
func (f *functionNode) wrapExpressionBody(body *sitter.Node, statements []warning.Statement) {
	outer := lineIndent(f.src, int(f.node.StartByte()))
	inner := outer + "  "

	var b strings.Builder
	b.WriteString("{")
	for _, s := range statements {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(s.String())
	}
	b.WriteString("\n")
	b.WriteString(inner)
	b.WriteString("return ")
	f.edits.insert(int(body.StartByte()), b.String(), false)
	f.edits.insert(int(body.EndByte()), ";\n"+outer+"}", true)
}

// commentBearer returns the node whose leading comments document fn. Function
// expressions are documented on the statement two levels up, e.g. the
// lexical_declaration around `const f = () => {}` or the expression_statement
// around `run(() => {})`. `export default function () {}` is documented on the
// export statement itself.
func commentBearer(fn *sitter.Node) *sitter.Node {
	switch fn.Type() {
	case nodeFunctionDeclaration, nodeGeneratorFunctionDeclaration:
		return fn
	}
	parent := funcname.SyntacticParent(fn)
	if parent == nil {
		return nil
	}
	switch parent.Type() {
	case nodeExportStatement:
		return parent
	case nodeArguments:
		if parent = funcname.SyntacticParent(parent); parent == nil {
			return nil
		}
	}
	return funcname.SyntacticParent(parent)
}

// leadingComments collects the comment siblings directly before n. A comment
// sharing its first row with the preceding statement belongs to that
// statement; punctuation such as an opening brace owns no comments.
func leadingComments(n *sitter.Node) []*sitter.Node {
	var comments []*sitter.Node
	prev := n.PrevSibling()
	for prev != nil && prev.Type() == nodeComment {
		comments = append([]*sitter.Node{prev}, comments...)
		prev = prev.PrevSibling()
	}
	if len(comments) > 0 && prev != nil && prev.IsNamed() && prev.EndPoint().Row == comments[0].StartPoint().Row {
		comments = comments[1:]
	}
	return comments
}

// directivePrologue returns the last directive ('use strict' and the like)
// opening body, and the index of the first named child after the prologue.
func directivePrologue(body *sitter.Node) (last *sitter.Node, next int) {
	n := int(body.NamedChildCount())
	for ; next < n; next++ {
		child := body.NamedChild(next)
		if child.Type() == nodeComment {
			continue
		}
		if !isDirective(child) {
			break
		}
		last = child
	}
	return last, next
}

func isDirective(n *sitter.Node) bool {
	return n.Type() == nodeExpressionStatement &&
		n.NamedChildCount() == 1 &&
		n.NamedChild(0).Type() == nodeString
}

// blockStartsWith reports whether the statements of body, from the named
// child at index from on, begin with statements.
func blockStartsWith(body *sitter.Node, from int, src []byte, statements []warning.Statement) bool {
	var existing []string
	for i := from; i < int(body.NamedChildCount()) && len(existing) < len(statements); i++ {
		child := body.NamedChild(i)
		if child.Type() == nodeComment {
			continue
		}
		existing = append(existing, child.Content(src))
	}
	if len(existing) < len(statements) {
		return false
	}
	for i, s := range statements {
		if existing[i] != s.String() {
			return false
		}
	}
	return true
}

func lineIndent(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		n += utf16.RuneLen(r)
		b = b[size:]
	}
	return n
}
