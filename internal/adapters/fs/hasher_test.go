package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/fs"
	"go.trai.ch/ormwire/internal/core/domain"
)

func TestHasher_Fingerprint(t *testing.T) {
	tmpDir := t.TempDir()
	main := filepath.Join(tmpDir, "ormwire.yaml")
	imported := filepath.Join(tmpDir, "doctrine.yaml")
	writeFile(t, main, "imports: [doctrine.yaml]\n")
	writeFile(t, imported, "doctrine: {}\n")

	hasher := fs.NewHasher(fs.NewWalker())

	first, err := hasher.Fingerprint([]string{main, imported})
	require.NoError(t, err)
	assert.Len(t, first, 16)

	t.Run("order independent", func(t *testing.T) {
		got, err := hasher.Fingerprint([]string{imported, main, main})
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("content sensitive", func(t *testing.T) {
		writeFile(t, imported, "doctrine: {dbal: {}}\n")
		t.Cleanup(func() { writeFile(t, imported, "doctrine: {}\n") })

		got, err := hasher.Fingerprint([]string{main, imported})
		require.NoError(t, err)
		assert.NotEqual(t, first, got)
	})

	t.Run("path sensitive", func(t *testing.T) {
		got, err := hasher.Fingerprint([]string{main})
		require.NoError(t, err)
		assert.NotEqual(t, first, got)
	})
}

func TestHasher_Fingerprint_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	bundle := filepath.Join(tmpDir, "AppBundle")
	writeFile(t, filepath.Join(bundle, "Entity", "User.php"), "<?php class User {}")

	hasher := fs.NewHasher(fs.NewWalker())

	before, err := hasher.Fingerprint([]string{bundle})
	require.NoError(t, err)

	writeFile(t, filepath.Join(bundle, "Entity", "Group.php"), "<?php class Group {}")

	after, err := hasher.Fingerprint([]string{bundle})
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestHasher_Fingerprint_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := fs.NewHasher(fs.NewWalker()).Fingerprint([]string{missing})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFingerprintFailed.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a")
	b := filepath.Join(tmpDir, "b")
	writeFile(t, a, "same")
	writeFile(t, b, "same")

	hasher := fs.NewHasher(fs.NewWalker())
	hashA, err := hasher.ComputeFileHash(a)
	require.NoError(t, err)
	hashB, err := hasher.ComputeFileHash(b)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
}
