package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_ReadWrite(t *testing.T) {
	m := NewMemoryFileSystem()

	require.NoError(t, m.WriteFile("scenes/a.json", []byte(`{"name":"a"}`), 0644))

	data, err := m.ReadFile("scenes/./a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a"}`, string(data))

	// Returned slices are copies.
	data[0] = 'X'
	again, err := m.ReadFile("scenes/a.json")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again[0])
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.ReadFile("nope.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.Stat("nope.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/chart.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("png"))
	require.NoError(t, err)

	before, err := m.ReadFile("out/chart.png")
	require.NoError(t, err)
	assert.Empty(t, before)

	require.NoError(t, w.Close())
	after, err := m.ReadFile("out/chart.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(after))

	info, err := m.Stat("out/chart.png")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll(filepath.Join("a", "b", "c"), 0755))

	for _, dir := range []string{"a", filepath.Join("a", "b"), filepath.Join("a", "b", "c")} {
		info, err := m.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.True(t, info.Mode().IsDir(), dir)
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("b.html", nil, 0644))
	require.NoError(t, m.WriteFile("a.png", nil, 0644))

	assert.Equal(t, []string{"a.png", "b.html"}, m.Files())
}

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, fsys.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, fsys.WriteFile(path, []byte("{}"), 0644))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	w, err := fsys.Create(filepath.Join(dir, "chart.html"))
	require.NoError(t, err)
	_, err = w.Write([]byte("<html></html>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := fsys.Stat(filepath.Join(dir, "chart.html"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), info.Size())
}
