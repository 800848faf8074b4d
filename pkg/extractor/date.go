package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	fullDatePattern  = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	shortDatePattern = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.`)
)

// ResolveDate finds the first "D.M.YYYY" date in text, or failing that the
// first "D.M." combined with fallbackYear, and returns it as YYYY-MM-DD.
// A fallbackYear of 0 means no year is known. Dates that do not exist on the
// calendar are rejected.
func ResolveDate(text string, fallbackYear int) (string, bool) {
	if m := fullDatePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[3])
		return isoDate(year, m[2], m[1])
	}
	if m := shortDatePattern.FindStringSubmatch(text); m != nil && fallbackYear > 0 {
		return isoDate(fallbackYear, m[2], m[1])
	}
	return "", false
}

func isoDate(year int, month, day string) (string, bool) {
	mo, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	t := time.Date(year, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != mo || t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, mo, d), true
}
