package pkgroot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocate_FindsNearestAncestor(t *testing.T) {
	root := t.TempDir()
	descriptor := filepath.Join(root, "pkg", DescriptorName)
	writeFile(t, descriptor, `{"name":"x","version":"1.0.0"}`)

	for _, sub := range []string{"", "src", "src/a", "src/a/b/c/d"} {
		dir := filepath.Join(root, "pkg", filepath.FromSlash(sub))
		require.NoError(t, os.MkdirAll(dir, 0o755))

		got, err := Locate(dir)
		require.NoError(t, err, sub)
		assert.Equal(t, descriptor, got, sub)
	}
}

func TestLocate_PrefersInnermostDescriptor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DescriptorName), `{}`)
	inner := filepath.Join(root, "packages", "inner", DescriptorName)
	writeFile(t, inner, `{}`)

	dir := filepath.Join(root, "packages", "inner", "lib")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	got, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestLocate_NotFound(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, err := Locate(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDescriptorNotFound)
}

func TestLocate_PropagatesOtherErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "regular")
	writeFile(t, file, "not a directory")

	// Looking inside a regular file fails with ENOTDIR, which must not be
	// mistaken for a missing descriptor.
	_, err := Locate(filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDescriptorNotFound)
}

func TestLocate_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	descriptor := filepath.Join(root, DescriptorName)
	writeFile(t, descriptor, `{}`)
	require.NoError(t, os.Chmod(descriptor, 0o000))
	t.Cleanup(func() { _ = os.Chmod(descriptor, 0o644) })

	_, err := Locate(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.NotErrorIs(t, err, ErrDescriptorNotFound)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()

	t.Run("name and version", func(t *testing.T) {
		path := filepath.Join(root, "ok", DescriptorName)
		writeFile(t, path, `{"name":"x","version":"1.0.0","private":true}`)

		d, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "x", d.Name)
		assert.Equal(t, "1.0.0", d.Version)
		assert.Equal(t, path, d.Path)
		assert.Equal(t, filepath.Dir(path), d.Root())
	})

	t.Run("missing fields are empty", func(t *testing.T) {
		path := filepath.Join(root, "empty", DescriptorName)
		writeFile(t, path, `{}`)

		d, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, d.Name)
		assert.Empty(t, d.Version)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(root, "bad", DescriptorName)
		writeFile(t, path, `{"name":`)

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedDescriptor)
	})
}

func TestDescriptor_RelativePath(t *testing.T) {
	root := t.TempDir()
	d := &Descriptor{Path: filepath.Join(root, DescriptorName)}

	rel, err := d.RelativePath(filepath.Join(root, "src", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "src/a.js", rel)
	assert.False(t, filepath.IsAbs(rel))
}

func TestResolver_CachesPerDirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, DescriptorName)
	writeFile(t, path, `{"name":"cached","version":"0.1.0"}`)

	r := NewResolver()
	first, err := r.Resolve(root)
	require.NoError(t, err)

	// Rewriting the file must not change the memoized answer.
	writeFile(t, path, `{"name":"changed","version":"9.9.9"}`)
	second, err := r.Resolve(root)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "cached", second.Name)
}

func TestResolver_DoesNotCacheFailures(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	r := NewResolver()
	_, err := r.Resolve(dir)
	require.ErrorIs(t, err, ErrDescriptorNotFound)

	writeFile(t, filepath.Join(root, DescriptorName), `{"name":"late"}`)
	d, err := r.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "late", d.Name)
}
