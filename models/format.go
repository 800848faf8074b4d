package models

import (
	"fmt"
	"strings"
)

// Format selects how records are written to an output stream.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat resolves a --format flag value. Empty selects the fallback.
func ParseFormat(s string, fallback Format) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, nil
	}
	switch f := Format(s); f {
	case FormatJSONL, FormatJSON, FormatCSV, FormatYAML, FormatTable:
		return f, nil
	case "ndjson":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("unknown format %q (use jsonl, json, csv, yaml or table)", s)
}
