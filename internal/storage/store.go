package storage

import (
	"context"

	"depwarn/internal/warning"
)

// Record is one deprecation warning inserted into a source file.
type Record struct {
	File string `json:"file"` // absolute path of the source file
	warning.SourceLocation
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	PackageName string
	File        string
}

// Store persists the deprecation inventory.
type Store interface {
	// ReplaceFile drops every record of file and stores locs in its place.
	ReplaceFile(ctx context.Context, file string, locs []warning.SourceLocation) error

	// List returns records ordered by package, path and line.
	List(ctx context.Context, filter ListFilter) ([]Record, error)

	Close() error
}
