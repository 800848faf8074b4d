package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mpr1255/2025s1-mlci/pkg/storage"
)

// PageResult is what the crawler knows about one processed URL.
type PageResult struct {
	URL       string
	Kind      string
	FilePath  string
	Links     int
	Skipped   bool
	Error     error
	ErrorType string
}

// Build aggregates results into a manifest.
func Build(runID, startURL string, results []PageResult, s *storage.Storage, now time.Time) CrawlManifest {
	m := CrawlManifest{
		RunID:       runID,
		StartURL:    startURL,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Requests:    len(results),
		Results:     make([]PageSummary, 0, len(results)),
	}

	for _, r := range results {
		summary := PageSummary{URL: r.URL, Kind: r.Kind, Links: r.Links}
		switch {
		case r.Error != nil:
			m.Failed++
			summary.Status = "error"
			summary.ErrorType = r.ErrorType
			summary.ErrorMessage = r.Error.Error()
		case r.Skipped:
			m.Skipped++
			summary.Status = "skipped"
			summary.FilePath = r.FilePath
		case r.FilePath != "":
			m.Archived++
			summary.Status = "archived"
			summary.FilePath = r.FilePath
			if stats, err := s.GetFileStats(r.FilePath); err == nil {
				summary.SizeBytes = stats.SizeBytes
			}
		default:
			summary.Status = "followed"
		}
		m.Results = append(m.Results, summary)
	}
	return m
}

// Write saves m as JSON under <root>/manifests and returns the file path.
func Write(m CrawlManifest, s *storage.Storage, now time.Time) (string, error) {
	name := fmt.Sprintf("crawl-%s-%s.json", now.Format("2006-01-02"), shortID(m.RunID))
	path := filepath.Join(s.Root, "manifests", name)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to save manifest: %w", err)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
