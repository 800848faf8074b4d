package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
	"github.com/mpr1255/2025s1-mlci/pkg/extractor"
	"github.com/mpr1255/2025s1-mlci/pkg/pagemeta"
	"github.com/mpr1255/2025s1-mlci/pkg/venue"
)

// Job is one URL for a worker to fetch.
type Job struct {
	URL     string
	Landing bool
}

// Result holds the outcome of a processed job.
type Result struct {
	URL       string
	Kind      PageKind
	Links     []string
	FilePath  string
	Skipped   bool
	Error     error
	ErrorType string
}

// runPool fans jobs out to the configured number of workers and returns the
// results in job order.
func (c *Crawler) runPool(ctx context.Context, jobs []Job) []Result {
	var wg sync.WaitGroup
	jobCh := make(chan indexedJob, len(jobs))
	resultCh := make(chan indexedResult, len(jobs))

	workers := c.opts.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go c.worker(ctx, w, &wg, jobCh, resultCh)
	}

	for i, job := range jobs {
		jobCh <- indexedJob{index: i, job: job}
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	results := make([]Result, len(jobs))
	for r := range resultCh {
		results[r.index] = r.result
	}
	return results
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

func (c *Crawler) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan indexedJob, results chan<- indexedResult) {
	defer wg.Done()
	for ij := range jobs {
		c.logger.Debug("Worker started job", "worker_id", id, "url", ij.job.URL)
		result := c.process(ctx, ij.job)
		if result.Error != nil {
			c.logger.Error("Failed to process page", "worker_id", id, "url", ij.job.URL, "error_type", result.ErrorType, "error", result.Error)
		}
		results <- indexedResult{index: ij.index, result: result}
	}
}

func (c *Crawler) process(ctx context.Context, job Job) Result {
	result := Result{URL: job.URL, Kind: KindListing}
	if job.Landing {
		result.Kind = KindLanding
	}

	base, err := url.Parse(job.URL)
	if err != nil {
		result.Error = err
		result.ErrorType = "url_error"
		return result
	}

	doc, body, err := c.fetcher.GetHtml(ctx, job.URL)
	if err != nil {
		result.Error = err
		result.ErrorType = "fetch_error"
		return result
	}

	if doc.Find("table." + extractor.MenuTableClass).Length() == 0 {
		result.Links = c.discoverLinks(base, doc, job.Landing)
		c.logger.Info("Checked page for links", "url", job.URL, "kind", result.Kind, "links", len(result.Links))
		return result
	}

	// Venue pages are archived and not followed any further.
	result.Kind = KindMensa
	var root *dom.Element
	if len(doc.Nodes) > 0 {
		root = dom.FromHTMLNode(doc.Nodes[0])
	}
	v := venue.FromPage(job.URL, root)
	if !v.IsComplete() {
		result.Error = errIncompleteVenue(job.URL, v)
		result.ErrorType = "venue_error"
		return result
	}

	path := venue.ArchivePath(c.storage.Root, v, c.opts.Today)
	result.FilePath = path
	if !c.opts.Overwrite && c.storage.HasFile(path) {
		c.logger.Info("Skipping existing file", "url", job.URL, "file", path)
		result.Skipped = true
		return result
	}

	if err := c.storage.SaveFile(path, body); err != nil {
		result.Error = err
		result.ErrorType = "save_error"
		return result
	}
	c.logger.Info("Saved mensa page", "url", job.URL, "file", path, "city", v.City, "institution", v.Institution, "venue", v.Name)

	c.recordPage(ctx, job.URL, path, body)
	return result
}

func (c *Crawler) recordPage(ctx context.Context, rawURL, path string, body []byte) {
	if c.database == nil {
		return
	}
	page := models.Page{
		URL:         rawURL,
		FilePath:    path,
		ContentHash: common.ContentHash(body),
		FetchedAt:   time.Now().UTC(),
	}
	meta, err := pagemeta.Extract(rawURL, body)
	if err != nil {
		c.logger.Warn("Failed to read page metadata", "url", rawURL, "error", err)
	} else {
		page.Title = meta.Title
		page.SiteName = meta.SiteName
		page.Language = meta.Language
	}
	if err := c.database.RecordPage(ctx, page); err != nil {
		c.logger.Warn("Failed to record page", "url", rawURL, "error", err)
	}
}

func errIncompleteVenue(rawURL string, v models.Venue) error {
	return fmt.Errorf("could not identify venue for %s (city %q, name %q)", rawURL, v.City, v.Name)
}
