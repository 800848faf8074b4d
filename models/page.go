package models

import "time"

// Page is an archived venue page as recorded in the page index.
type Page struct {
	URL         string    `json:"url" yaml:"url"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	SiteName    string    `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Language    string    `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1, e.g. "de"
	ContentHash string    `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	FetchedAt   time.Time `json:"fetched_at" yaml:"fetched_at"`
}
