package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"testing"

	"github.com/atopile/faebryk-project-template/pkg/filesystem"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/stretchr/testify/require"
)

// RepoRoot is where NewRepo places the fixture repository
const RepoRoot = "/repo"

// NewRepo creates an in-memory filesystem holding files below RepoRoot.
// Keys are slash separated paths relative to the root.
func NewRepo(t *testing.T, files map[string]string) types.FS {
	t.Helper()

	fsys := filesystem.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll(RepoRoot, 0755))
	for rel, content := range files {
		WriteFile(t, fsys, rel, content)
	}
	return fsys
}

// WriteFile writes content at rel below RepoRoot, creating parents
func WriteFile(t *testing.T, fsys types.FS, rel, content string) {
	t.Helper()

	abs := filepath.Join(RepoRoot, filepath.FromSlash(rel))
	require.NoError(t, fsys.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, fsys.WriteFile(abs, []byte(content), 0644))
}

// ReadTree returns every regular file below dir keyed by its slash
// separated path relative to dir
func ReadTree(t *testing.T, fsys types.FS, dir string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	var walk func(string)
	walk = func(current string) {
		entries, err := fsys.ReadDir(current)
		require.NoError(t, err)
		for _, entry := range entries {
			path := filepath.Join(current, entry.Name())
			if entry.IsDir() {
				walk(path)
				continue
			}
			data, err := fsys.ReadFile(path)
			require.NoError(t, err)
			rel, err := filepath.Rel(dir, path)
			require.NoError(t, err)
			tree[filepath.ToSlash(rel)] = string(data)
		}
	}
	walk(dir)
	return tree
}

// Dirs lists every directory below dir, relative and sorted
func Dirs(t *testing.T, fsys types.FS, dir string) []string {
	t.Helper()

	var dirs []string
	var walk func(string)
	walk = func(current string) {
		entries, err := fsys.ReadDir(current)
		require.NoError(t, err)
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(current, entry.Name())
			rel, err := filepath.Rel(dir, path)
			require.NoError(t, err)
			dirs = append(dirs, filepath.ToSlash(rel))
			walk(path)
		}
	}
	walk(dir)
	sort.Strings(dirs)
	return dirs
}

// Exists reports whether path exists on fsys
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// Mode returns the permission bits of path
func Mode(t *testing.T, fsys types.FS, path string) fs.FileMode {
	t.Helper()

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	return info.Mode().Perm()
}
