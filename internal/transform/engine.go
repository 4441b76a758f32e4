package transform

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrSyntax is returned when the source does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// Handler is invoked for every node whose type it is registered for.
type Handler func(fn FunctionNode) error

// Handlers maps tree-sitter node types to handlers.
type Handlers map[string]Handler

// Engine parses JavaScript and drives handlers over the syntax tree.
type Engine struct {
	handlers Handlers
}

// NewEngine creates an engine dispatching to handlers.
func NewEngine(handlers Handlers) *Engine {
	return &Engine{handlers: handlers}
}

// Run parses src, calls the matching handler for each named node in document order
// and returns src with the handlers' insertions applied. The first handler
// error stops the walk and no edits are applied.
func (e *Engine) Run(ctx context.Context, src []byte) ([]byte, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	edits := &editList{}
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	var visit func(*sitter.TreeCursor) error
	visit = func(c *sitter.TreeCursor) error {
		n := c.CurrentNode()
		// Keyword tokens share type names with nodes, e.g. `function`.
		if h, ok := e.handlers[n.Type()]; ok && n.IsNamed() {
			if err := h(&functionNode{node: n, src: src, edits: edits}); err != nil {
				return err
			}
		}
		if c.GoToFirstChild() {
			if err := visit(c); err != nil {
				return err
			}
			for c.GoToNextSibling() {
				if err := visit(c); err != nil {
					return err
				}
			}
			c.GoToParent()
		}
		return nil
	}
	if err := visit(cursor); err != nil {
		return nil, err
	}

	if edits.len() == 0 {
		return src, nil
	}
	return edits.apply(src)
}

// syntaxError reports the position of the first ERROR or MISSING node.
func syntaxError(root *sitter.Node) error {
	var find func(n *sitter.Node) *sitter.Node
	find = func(n *sitter.Node) *sitter.Node {
		if n.Type() == "ERROR" || n.IsMissing() {
			return n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.HasError() || child.IsMissing() {
				if found := find(child); found != nil {
					return found
				}
			}
		}
		return nil
	}
	bad := find(root)
	if bad == nil {
		return ErrSyntax
	}
	p := bad.StartPoint()
	return fmt.Errorf("%w at line %d, column %d", ErrSyntax, p.Row+1, p.Column)
}
