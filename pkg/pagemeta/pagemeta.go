// Package pagemeta reads descriptive metadata for the page index.
package pagemeta

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/mpr1255/2025s1-mlci/pkg/langdetect"
	"github.com/mpr1255/2025s1-mlci/pkg/textutil"
)

// Meta is what the index keeps about an archived page.
type Meta struct {
	Title    string
	SiteName string
	Language string
	// Text is the readable body text, used for language detection.
	Text string
}

// Extract runs readability over the raw page. The language falls back to the
// html lang attribute when the readable text is too short to classify.
func Extract(rawURL string, body []byte) (*Meta, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read page metadata: %w", err)
	}

	meta := &Meta{
		Title:    textutil.Normalize(article.Title),
		SiteName: textutil.Normalize(article.SiteName),
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse readable content: %w", err)
	}
	meta.Text = textutil.Normalize(content.Text())

	meta.Language = langdetect.Detect(meta.Text)
	if meta.Language == langdetect.Unknown {
		meta.Language = htmlLang(body)
	}
	return meta, nil
}

func htmlLang(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return langdetect.Unknown
	}
	lang := strings.ToLower(strings.TrimSpace(doc.Find("html").AttrOr("lang", "")))
	if len(lang) < 2 {
		return langdetect.Unknown
	}
	return lang[:2]
}
