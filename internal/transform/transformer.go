// Package transform rewrites JavaScript sources so that functions documented
// with @deprecated warn on every call.
//
// Parsing is done with tree-sitter. The Engine walks the tree and dispatches
// function nodes to a Visitor, which resolves the enclosing package.json,
// extracts @deprecated tags from the leading comments and prepends one
// console.warn statement per tag to the function body, in tag order.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"depwarn/internal/pkgroot"
	"depwarn/internal/warning"
)

// Result is the outcome of transforming one file.
type Result struct {
	Path    string
	Source  []byte
	Changed bool
	Records []warning.SourceLocation
}

// Transformer rewrites files. It is safe to reuse across files; package.json
// lookups are shared through the resolver.
type Transformer struct {
	resolver *pkgroot.Resolver
}

// NewTransformer creates a transformer. A nil resolver gets a fresh one.
func NewTransformer(resolver *pkgroot.Resolver) *Transformer {
	if resolver == nil {
		resolver = pkgroot.NewResolver()
	}
	return &Transformer{resolver: resolver}
}

// TransformFile reads and transforms the file at path. The file is not written.
func (t *Transformer) TransformFile(ctx context.Context, path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return t.TransformSource(ctx, path, src)
}

// TransformSource transforms src as if it were the content of filename.
func (t *Transformer) TransformSource(ctx context.Context, filename string, src []byte) (*Result, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	v := NewVisitor(t.resolver, abs)
	out, err := NewEngine(v.Handlers()).Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &Result{
		Path:    abs,
		Source:  out,
		Changed: !bytes.Equal(out, src),
		Records: v.Records(),
	}, nil
}
