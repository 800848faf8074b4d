// Package textutil normalizes text pulled out of scraped markup.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims the input, collapses every run of whitespace (including
// newlines and non-breaking spaces) into a single space and returns the
// result in Unicode NFC form.
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input))
	for i, field := range strings.Fields(input) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
	}
	return norm.NFC.String(b.String())
}

var titleCaser = cases.Title(language.German)

// TitleFromSlug turns a URL slug such as "uni-mainz" into "Uni Mainz".
func TitleFromSlug(slug string) string {
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.ReplaceAll(slug, "_", " ")
	return titleCaser.String(Normalize(slug))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
