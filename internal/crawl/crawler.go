package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/fetcher"
	"github.com/mpr1255/2025s1-mlci/pkg/frontier"
	"github.com/mpr1255/2025s1-mlci/pkg/storage"
)

// PageKind is how a crawled page was treated.
type PageKind string

const (
	KindLanding PageKind = "landing"
	KindListing PageKind = "listing"
	KindMensa   PageKind = "mensa"
)

type Options struct {
	StartURL  string
	Workers   int
	Limit     int // maximum number of requests, 0 for no limit
	Overwrite bool
	// Today names archived files; defaults to the current date.
	Today string
}

// Crawler walks the listing site breadth first and archives every venue
// page that carries a weekly menu.
type Crawler struct {
	logger   *slog.Logger
	fetcher  *fetcher.Fetcher
	storage  *storage.Storage
	database *db.DB
	frontier *frontier.Frontier
	opts     Options
	host     string
	results  []Result
}

// New builds a crawler. database may be nil, in which case pages are not
// indexed.
func New(logger *slog.Logger, f *fetcher.Fetcher, s *storage.Storage, database *db.DB, opts Options) (*Crawler, error) {
	start, err := url.Parse(opts.StartURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start url: %w", err)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Today == "" {
		opts.Today = time.Now().Format("2006-01-02")
	}
	return &Crawler{
		logger:   logger,
		fetcher:  f,
		storage:  s,
		database: database,
		frontier: frontier.New(),
		opts:     opts,
		host:     strings.ToLower(start.Host),
	}, nil
}

// Run crawls level by level until no new links remain, the request limit is
// reached or ctx is cancelled.
func (c *Crawler) Run(ctx context.Context) (db.RunTally, error) {
	var tally db.RunTally
	c.results = nil
	level := []string{c.opts.StartURL}

	for depth := 0; len(level) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		var jobs []Job
		for _, u := range level {
			if c.opts.Limit > 0 && tally.Requests+len(jobs) >= c.opts.Limit {
				c.logger.Info("Request limit reached", "limit", c.opts.Limit)
				break
			}
			if c.frontier.TryVisit(u) {
				jobs = append(jobs, Job{URL: u, Landing: depth == 0})
			}
		}
		if len(jobs) == 0 {
			break
		}

		c.logger.Info("Crawling level", "depth", depth, "urls", len(jobs), "visited", c.frontier.Len())
		results := c.runPool(ctx, jobs)
		c.results = append(c.results, results...)

		var next []string
		seen := make(map[string]struct{})
		for _, r := range results {
			tally.Requests++
			switch {
			case r.Error != nil:
				tally.Failed++
			case r.Skipped:
				tally.Skipped++
			case r.Kind == KindMensa:
				tally.Archived++
			}
			for _, link := range r.Links {
				key := frontier.Normalize(link)
				if _, dup := seen[key]; dup || !c.frontier.ShouldVisit(link) {
					continue
				}
				seen[key] = struct{}{}
				next = append(next, link)
			}
		}

		if c.opts.Limit > 0 && tally.Requests >= c.opts.Limit {
			c.logger.Info("Request limit reached", "limit", c.opts.Limit)
			break
		}
		level = next
	}
	return tally, nil
}

// Results returns every processed URL of the last Run in crawl order.
func (c *Crawler) Results() []Result {
	return c.results
}

// discoverLinks returns the links worth following from a non-menu page,
// resolved against base and restricted to the crawl host.
func (c *Crawler) discoverLinks(base *url.URL, doc *goquery.Document, landing bool) []string {
	var hrefs []string
	collect := func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	}

	if landing {
		doc.Find("ul li a[href]").Each(collect)
	} else {
		doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
			section := h2.NextUntil("h2")
			n := section.Find(`a[href*="mensa-"]`).Each(collect).Length()
			if n > 0 {
				c.logger.Debug("Found institution section", "section", strings.TrimSpace(h2.Text()), "links", n)
			}
		})
		doc.Find(`a[href*="mensa-"]`).Each(collect)
		doc.Find(`a[href*="/index.html"], a[href$="/"]`).Each(collect)
	}

	seen := make(map[string]struct{})
	var links []string
	for _, href := range hrefs {
		link, ok := c.resolve(base, href)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

func (c *Crawler) resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if strings.ToLower(abs.Host) != c.host {
		return "", false
	}
	abs.Fragment = ""
	return abs.String(), true
}
