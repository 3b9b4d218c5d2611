package core

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFilesAtomic(t *testing.T) {
	dir := t.TempDir()
	files := []PendingFile{
		{Path: filepath.Join(dir, "out", "a.json"), Data: []byte("{}\n")},
		{Path: filepath.Join(dir, "out", "b.txt"), Data: []byte{}},
	}
	require.NoError(t, WriteFilesAtomic(files))

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		assert.Equal(t, f.Data, data)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files should be left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(files[0].Path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestWriteFilesAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, WriteFilesAtomic([]PendingFile{{Path: path, Data: []byte("new")}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFilesAtomicStageFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))
	existing := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	err := WriteFilesAtomic([]PendingFile{
		{Path: filepath.Join(dir, "a.json"), Data: []byte("{}")},
		{Path: existing, Data: []byte("new")},
		{Path: filepath.Join(blocker, "b.txt"), Data: []byte("b")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocker")

	// The files staged before the failure are discarded, and existing files are untouched
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"blocker", "c.txt"}, names)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestWriteFilesAtomicRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory can't be replaced by a file
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.txt"), 0755))

	err := WriteFilesAtomic([]PendingFile{
		{Path: filepath.Join(dir, "a.json"), Data: []byte("{}")},
		{Path: filepath.Join(dir, "b.mrpack"), Data: []byte("zip")},
		{Path: filepath.Join(dir, "c.txt"), Data: []byte("c")},
	})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c.txt", entries[0].Name())
}
