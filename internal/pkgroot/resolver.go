package pkgroot

import (
	"path/filepath"
	"sync"
)

// Resolver memoizes descriptor lookups per starting directory. Failed lookups
// are not cached, so a later call retries against the filesystem.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]*Descriptor
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]*Descriptor)}
}

// Resolve returns the nearest descriptor for dir.
func (r *Resolver) Resolve(dir string) (*Descriptor, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.cache[abs]; ok {
		return d, nil
	}
	path, err := Locate(abs)
	if err != nil {
		return nil, err
	}
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	r.cache[abs] = d
	return d, nil
}
