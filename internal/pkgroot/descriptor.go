package pkgroot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedDescriptor indicates that a package.json could not be decoded.
var ErrMalformedDescriptor = errors.New("malformed package.json")

// Descriptor is the subset of package.json the rewriter reports.
type Descriptor struct {
	Path    string `json:"-"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Load reads and decodes the descriptor at path. Missing name or version
// fields are left empty.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrMalformedDescriptor, err)
	}
	d.Path = path
	return &d, nil
}

// Root returns the directory holding the descriptor.
func (d *Descriptor) Root() string {
	return filepath.Dir(d.Path)
}

// RelativePath returns filename relative to the descriptor's directory using
// forward slashes.
func (d *Descriptor) RelativePath(filename string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(d.Root(), abs)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", filename, err)
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./"), nil
}
