package transform

import (
	"fmt"
	"path/filepath"

	"depwarn/internal/jsdoc"
	"depwarn/internal/pkgroot"
	"depwarn/internal/warning"
)

// Visitor injects a console.warn call into every function documented with
// @deprecated. One Visitor serves one file.
type Visitor struct {
	resolver *pkgroot.Resolver
	filename string
	records  []warning.SourceLocation
}

// NewVisitor creates a visitor for the file at filename, which must be absolute.
func NewVisitor(resolver *pkgroot.Resolver, filename string) *Visitor {
	return &Visitor{resolver: resolver, filename: filename}
}

// Handlers returns the dispatch table for function-like nodes.
func (v *Visitor) Handlers() Handlers {
	return Handlers{
		nodeArrowFunction:                v.VisitFunction,
		nodeFunction:                     v.VisitFunction,
		nodeFunctionExpression:           v.VisitFunction,
		nodeGeneratorFunction:            v.VisitFunction,
		nodeFunctionDeclaration:          v.VisitFunction,
		nodeGeneratorFunctionDeclaration: v.VisitFunction,
	}
}

// Records returns the locations of every deprecation seen so far.
func (v *Visitor) Records() []warning.SourceLocation {
	return v.records
}

// VisitFunction handles one function node.
func (v *Visitor) VisitFunction(fn FunctionNode) error {
	comments := fn.LeadingComments()
	if len(comments) == 0 {
		return nil
	}

	desc, err := v.resolver.Resolve(filepath.Dir(v.filename))
	if err != nil {
		return err
	}
	relPath, err := desc.RelativePath(v.filename)
	if err != nil {
		return err
	}
	name := fn.Name()
	pos := fn.Start()

	var deprecations []jsdoc.Deprecation
	for _, c := range comments {
		found, err := jsdoc.Deprecations(c)
		if err != nil {
			return fmt.Errorf("line %d: %w", pos.Line, err)
		}
		deprecations = append(deprecations, found...)
	}
	if len(deprecations) == 0 {
		return nil
	}

	statements := make([]warning.Statement, 0, len(deprecations))
	for _, d := range deprecations {
		loc := warning.SourceLocation{
			FunctionName:   name,
			Message:        d.Message,
			PackageName:    desc.Name,
			PackageVersion: desc.Version,
			ScriptColumn:   pos.Column,
			ScriptLine:     pos.Line,
			ScriptPath:     relPath,
		}
		v.records = append(v.records, loc)
		statements = append(statements, warning.Synthesize(warning.SeverityWarn, warning.Message(name, pos.Line, relPath), loc))
	}
	fn.Prepend(statements...)
	return nil
}
