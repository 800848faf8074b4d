// Package venue derives venue identity from crawl URLs and archive paths.
package venue

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
	"github.com/mpr1255/2025s1-mlci/pkg/textutil"
)

const (
	mensaPrefix = "mensa-"
	indexPage   = "index.html"
)

var captureDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FromURL reads city, institution and venue name from the path of a venue
// page URL. Recognised layouts:
//
//	city/mensa-x/index.html        no institution
//	city/uni/mensa-x/index.html
//	city/uni/name/index.html
//	city/uni/index.html            the institution names the venue
//
// Name may be empty when the path alone does not identify the venue; see
// FromPage for the document fallback.
func FromURL(rawURL string) models.Venue {
	var v models.Venue
	u, err := url.Parse(rawURL)
	if err != nil {
		return v
	}
	parts := pathParts(u.Path)
	if len(parts) == 0 {
		return v
	}

	v.City = textutil.TitleFromSlug(parts[0])
	switch {
	case len(parts) == 3 && strings.HasPrefix(parts[1], mensaPrefix) && parts[2] == indexPage:
		v.Name = slugName(parts[1])
	case len(parts) >= 3 && !strings.HasPrefix(parts[1], mensaPrefix):
		v.Institution = textutil.TitleFromSlug(parts[1])
		switch {
		case len(parts) >= 4 && strings.HasPrefix(parts[2], mensaPrefix):
			v.Name = slugName(parts[2])
		case parts[2] != indexPage:
			v.Name = textutil.TitleFromSlug(parts[2])
		default:
			v.Name = v.Institution
		}
	}
	return v
}

// FromPage is FromURL with the document filling a missing name: the page
// title, then the first h1, then any "mensa-" path segment, then the last
// meaningful path segment.
func FromPage(rawURL string, doc *dom.Element) models.Venue {
	v := FromURL(rawURL)
	if v.Name != "" {
		return v
	}
	if doc != nil {
		if name := doc.FirstDescendant(dom.Tag("title")).Text(); name != "" {
			v.Name = name
			return v
		}
		if name := doc.FirstDescendant(dom.Tag("h1")).Text(); name != "" {
			v.Name = name
			return v
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return v
	}
	parts := pathParts(u.Path)
	for _, p := range parts {
		if strings.HasPrefix(p, mensaPrefix) {
			v.Name = slugName(p)
			return v
		}
	}
	if n := len(parts); n > 0 {
		last := parts[n-1]
		if last == indexPage && n > 1 {
			last = parts[n-2]
		}
		if last != indexPage {
			v.Name = textutil.TitleFromSlug(last)
		}
	}
	return v
}

// FromArchivePath reads a venue back from an archived page path. Two layouts
// are understood:
//
//	.../<city>/<institution>/<venue>/<YYYY-MM-DD>.html   written by ArchivePath
//	.../<city>/<venue>/<file>.html                       plain mirror of the site
//
// An institution directory equal to the city means the venue has none.
func FromArchivePath(path string) models.Venue {
	clean := filepath.Clean(path)
	stem := strings.TrimSuffix(filepath.Base(clean), filepath.Ext(clean))
	dir := filepath.Dir(clean)

	if captureDate.MatchString(stem) {
		name := filepath.Base(dir)
		inst := filepath.Base(filepath.Dir(dir))
		city := filepath.Base(filepath.Dir(filepath.Dir(dir)))
		if inst == city {
			inst = ""
		}
		return models.Venue{
			City:        archiveName(city),
			Institution: archiveName(inst),
			Name:        archiveName(name),
			CapturedOn:  stem,
		}
	}

	return models.Venue{
		City: archiveName(filepath.Base(filepath.Dir(dir))),
		Name: archiveName(strings.TrimPrefix(filepath.Base(dir), mensaPrefix)),
	}
}

// ArchivePath is where a venue page captured on date (YYYY-MM-DD) is stored.
// A venue without institution is filed under its city twice.
func ArchivePath(dataDir string, v models.Venue, date string) string {
	inst := v.Institution
	if inst == "" {
		inst = v.City
	}
	return filepath.Join(dataDir, v.City, inst, v.Name, date+".html")
}

func pathParts(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func slugName(segment string) string {
	return textutil.TitleFromSlug(strings.TrimPrefix(segment, mensaPrefix))
}

// archiveName accepts both title-cased directory names and raw URL slugs.
func archiveName(dir string) string {
	switch dir {
	case "", ".", string(filepath.Separator):
		return ""
	}
	if dir == strings.ToLower(dir) {
		return textutil.TitleFromSlug(dir)
	}
	return textutil.Normalize(dir)
}
