package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))
}

func TestWriteFile_CreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "2023", "alice.json")

	require.NoError(t, WriteFile(target, []byte(`{}`), 0600))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
	assert.True(t, DirectoryExists(filepath.Dir(target)))
}

func TestWriteFile_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := WriteFile(filepath.Join(blocker, "out.json"), []byte(`{}`), 0600)
	assert.Error(t, err)
}
