package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL cleans up a pasted URL: surrounding whitespace, markdown link
// syntax and stray punctuation at either end.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `(["'<`)

	return strings.TrimSpace(cleaned)
}

var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9]([-a-zA-Z0-9.]*[a-zA-Z0-9])?(:\d+)?$`)

// ValidateStartURL sanitizes a crawl start URL and checks that it is an
// absolute http(s) URL with a plausible host.
func ValidateStartURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", fmt.Errorf("empty start url")
	}
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("invalid start url %q: contains spaces", rawURL)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid start url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid start url %q: scheme must be http or https", rawURL)
	}
	if !hostPattern.MatchString(parsed.Host) {
		return "", fmt.Errorf("invalid start url %q: bad host", rawURL)
	}
	return cleaned, nil
}

// FallbackYear is the year used to complete dates written without one: the
// year of the capture date when it is known, else the year of now.
func FallbackYear(capturedOn string, now time.Time) int {
	if t, err := time.Parse("2006-01-02", capturedOn); err == nil {
		return t.Year()
	}
	return now.Year()
}

// CaptureDate parses a YYYY-MM-DD capture date, returning the zero time when
// it is missing or malformed.
func CaptureDate(capturedOn string) time.Time {
	t, err := time.Parse("2006-01-02", capturedOn)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ValidateDate checks a YYYY-MM-DD filter value. Empty is allowed.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return nil
}
