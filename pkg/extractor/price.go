package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var priceToken = regexp.MustCompile(`\d+[.,]?\d*`)

// ParsePrice reads a European-style price such as "3,40 €". Only the first
// comma is treated as the decimal separator, so "1,234,50" is not
// disambiguated.
func ParsePrice(text string) (float64, bool) {
	s := strings.ReplaceAll(text, "€", "")
	s = strings.ReplaceAll(s, "EUR", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)

	token := priceToken.FindString(s)
	if token == "" {
		return 0, false
	}
	token = strings.TrimSuffix(token, ",")
	v, err := strconv.ParseFloat(strings.TrimSuffix(token, "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
