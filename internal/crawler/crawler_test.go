package crawler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		path := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func TestCrawler_ScanProject(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"package.json",
		"index.js",
		"lib/a.mjs",
		"lib/b.cjs",
		"lib/c.JSX",
		"lib/readme.md",
		"lib/types.d.ts",
		"node_modules/dep/index.js",
		".git/hooks/pre-commit.js",
		"dist/bundle.js",
	)

	c := NewCrawler(nil, []string{".git", "node_modules", "dist"})

	var got []string
	err := c.ScanProject(root, func(path string) error {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js", "lib/a.mjs", "lib/b.cjs", "lib/c.JSX"}, got)
}

func TestCrawler_SingleFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "script.txt")

	var got []string
	err := NewCrawler(nil, nil).ScanProject(filepath.Join(root, "script.txt"), func(path string) error {
		got = append(got, filepath.Base(path))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"script.txt"}, got)
}

func TestCrawler_CallbackErrorStops(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.js", "b.js")

	stop := errors.New("stop")
	calls := 0
	err := NewCrawler(nil, nil).ScanProject(root, func(string) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCrawler_MissingRoot(t *testing.T) {
	err := NewCrawler(nil, nil).ScanProject(filepath.Join(t.TempDir(), "nope"), func(string) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
