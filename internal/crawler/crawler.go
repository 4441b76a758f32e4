package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Crawler scans a directory for JavaScript source files.
type Crawler struct {
	extensions []string
	ignored    []string
}

// NewCrawler creates a new crawler instance. Empty arguments fall back to
// the usual JavaScript extensions and ignored directories.
func NewCrawler(extensions, ignored []string) *Crawler {
	if len(extensions) == 0 {
		extensions = []string{".js", ".jsx", ".mjs", ".cjs"}
	}
	if ignored == nil {
		ignored = []string{".git", "vendor", "node_modules", "testdata"}
	}
	return &Crawler{
		extensions: extensions,
		ignored:    ignored,
	}
}

// Matches reports whether path has one of the crawled extensions.
func (c *Crawler) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ScanProject walks root and calls onFile for every matching file in lexical
// order. If root is a file it is passed to onFile directly, whatever its
// extension. An error returned by onFile stops the walk.
func (c *Crawler) ScanProject(root string, onFile func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return onFile(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !d.Type().IsRegular() || !c.Matches(d.Name()) {
			return nil
		}
		return onFile(path)
	})
}
