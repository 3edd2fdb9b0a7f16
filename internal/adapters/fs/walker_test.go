package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "b.yaml"), "b")
	writeFile(t, filepath.Join(tmpDir, "a", "c.yaml"), "c")
	writeFile(t, filepath.Join(tmpDir, "a.yaml"), "a")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir))

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a", "c.yaml"),
		filepath.Join(tmpDir, "a.yaml"),
		filepath.Join(tmpDir, "b.yaml"),
	}, files)
}

func TestWalker_WalkFiles_SkipsToolingDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "gitconfig")
	writeFile(t, filepath.Join(tmpDir, ".jj", "store"), "jjstore")
	writeFile(t, filepath.Join(tmpDir, ".ormwire", "cache", "graph"), "cached")
	writeFile(t, filepath.Join(tmpDir, "vendor", "lib.php"), "<?php")
	writeFile(t, filepath.Join(tmpDir, "Entity", "User.php"), "<?php")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir))

	assert.Equal(t, []string{filepath.Join(tmpDir, "Entity", "User.php")}, files)
}

func TestWalker_WalkFiles_EarlyBreak(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a"), "a")
	writeFile(t, filepath.Join(tmpDir, "b"), "b")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	files := slices.Collect(fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, files)
}
