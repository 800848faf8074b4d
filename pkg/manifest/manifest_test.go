package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mpr1255/2025s1-mlci/pkg/storage"
)

func TestBuildAndWrite(t *testing.T) {
	root := t.TempDir()
	s := storage.New(root)
	archived := filepath.Join(root, "Mainz", "Uni Mainz", "Mensaria", "2025-09-08.html")
	require.NoError(t, s.SaveFile(archived, []byte("<html></html>")))

	results := []PageResult{
		{URL: "https://x.de/index.html", Kind: "landing", Links: 2},
		{URL: "https://x.de/mainz/uni-mainz/mensa-mensaria/index.html", Kind: "mensa", FilePath: archived},
		{URL: "https://x.de/amberg/mensa-amberg/index.html", Kind: "mensa", FilePath: "old.html", Skipped: true},
		{URL: "https://x.de/broken/", Kind: "listing", Error: errors.New("status 404"), ErrorType: "fetch_error"},
	}
	now := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)

	m := Build("0123456789abcdef", "https://x.de/index.html", results, s, now)
	require.Equal(t, 4, m.Requests)
	require.Equal(t, 1, m.Archived)
	require.Equal(t, 1, m.Skipped)
	require.Equal(t, 1, m.Failed)
	require.Equal(t, "followed", m.Results[0].Status)
	require.Equal(t, int64(len("<html></html>")), m.Results[1].SizeBytes)
	require.Equal(t, "status 404", m.Results[3].ErrorMessage)

	path, err := Write(m, s, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "manifests", "crawl-2025-09-08-01234567.json"), path)
	require.False(t, strings.HasSuffix(path, ".html"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back CrawlManifest
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, m, back)
}
