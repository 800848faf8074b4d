package manifest

// CrawlManifest is the summary written after each crawl. It lists every
// requested URL with its outcome so a run can be audited without the
// database.
type CrawlManifest struct {
	RunID       string        `json:"run_id"`
	StartURL    string        `json:"start_url"`
	GeneratedAt string        `json:"generated_at"`
	Requests    int           `json:"requests"`
	Archived    int           `json:"archived"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Results     []PageSummary `json:"results"`
}

// PageSummary is the outcome for one URL.
type PageSummary struct {
	URL          string `json:"url"`
	Kind         string `json:"kind"`
	Status       string `json:"status"` // "archived", "skipped", "followed" or "error"
	FilePath     string `json:"file_path,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"`
	Links        int    `json:"links,omitempty"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
