package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultUserAgent = "mensa-scraper/1.0 (+https://github.com/mpr1255/2025s1-mlci)"
	DefaultTimeout   = 30 * time.Second
)

type Fetcher struct {
	client *resty.Client
}

type Options struct {
	UserAgent string
	Timeout   time.Duration
}

func NewFetcher(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &Fetcher{client: client}
}

// GetHtml fetches url and parses the body.
func (f *Fetcher) GetHtml(ctx context.Context, url string) (*goquery.Document, []byte, error) {
	body, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, body, nil
}

// GetHtmlBytes returns the raw body of a 200 response. Any other status is an
// error; there are no retries.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", res.StatusCode())
	}
	return res.Body(), nil
}
