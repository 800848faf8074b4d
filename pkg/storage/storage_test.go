package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndReadFile(t *testing.T) {
	s := New(t.TempDir())
	path := filepath.Join(s.Root, "Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08.html")

	require.False(t, s.HasFile(path))
	require.NoError(t, s.SaveFile(path, []byte("<html></html>")))
	require.True(t, s.HasFile(path))

	data, err := s.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))

	stats, err := s.GetFileStats(path)
	require.NoError(t, err)
	require.Equal(t, int64(len("<html></html>")), stats.SizeBytes)

	_, err = s.ReadFile(filepath.Join(s.Root, "missing.html"))
	require.Error(t, err)
}

func TestListHTML(t *testing.T) {
	s := New(t.TempDir())
	for _, rel := range []string{"b/2025-01-02.html", "a/2025-01-01.HTML", "a/notes.txt"} {
		require.NoError(t, s.SaveFile(filepath.Join(s.Root, rel), []byte("x")))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root, "empty.html"), 0o755))

	files, err := s.ListHTML()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(s.Root, "a", "2025-01-01.HTML"),
		filepath.Join(s.Root, "b", "2025-01-02.html"),
	}, files)

	_, err = New(filepath.Join(s.Root, "nope")).ListHTML()
	require.Error(t, err)
}
