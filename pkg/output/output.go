// Package output writes menu items in the formats the CLI and API offer.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/mpr1255/2025s1-mlci/models"
)

// CSVHeader is the column order of CSV output.
var CSVHeader = []string{
	"venue_city", "venue_institution", "venue_name", "date", "category",
	"item_name", "price_student", "price_staff", "item_id", "source_ref",
}

// Writer streams menu items. JSONL and CSV are written as items arrive;
// JSON, YAML and table buffer until Close.
type Writer struct {
	format  models.Format
	w       io.Writer
	enc     *json.Encoder
	csv     *csv.Writer
	pending []models.MenuItem
	wrote   bool
}

// NewWriter returns a writer for format.
func NewWriter(w io.Writer, format models.Format) (*Writer, error) {
	out := &Writer{format: format, w: w}
	switch format {
	case models.FormatJSONL:
		out.enc = json.NewEncoder(w)
	case models.FormatCSV:
		out.csv = csv.NewWriter(w)
	case models.FormatJSON, models.FormatYAML, models.FormatTable:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return out, nil
}

// Write emits items.
func (o *Writer) Write(items ...models.MenuItem) error {
	switch o.format {
	case models.FormatJSONL:
		for _, it := range items {
			if err := o.enc.Encode(it); err != nil {
				return fmt.Errorf("failed to write jsonl: %w", err)
			}
		}
	case models.FormatCSV:
		if !o.wrote {
			if err := o.csv.Write(CSVHeader); err != nil {
				return fmt.Errorf("failed to write csv header: %w", err)
			}
			o.wrote = true
		}
		for _, it := range items {
			if err := o.csv.Write(csvRow(it)); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
		}
		o.csv.Flush()
		return o.csv.Error()
	default:
		o.pending = append(o.pending, items...)
	}
	return nil
}

// Close flushes buffered formats. It does not close the underlying writer.
func (o *Writer) Close() error {
	switch o.format {
	case models.FormatJSON:
		items := o.pending
		if items == nil {
			items = []models.MenuItem{}
		}
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
	case models.FormatYAML:
		enc := yaml.NewEncoder(o.w)
		enc.SetIndent(2)
		items := o.pending
		if items == nil {
			items = []models.MenuItem{}
		}
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to write yaml: %w", err)
		}
		return enc.Close()
	case models.FormatTable:
		RenderMenuTable(o.w, o.pending)
	case models.FormatCSV:
		if !o.wrote {
			return o.Write()
		}
	}
	return nil
}

// WriteAll writes items in one go.
func WriteAll(w io.Writer, format models.Format, items []models.MenuItem) error {
	out, err := NewWriter(w, format)
	if err != nil {
		return err
	}
	if err := out.Write(items...); err != nil {
		return err
	}
	return out.Close()
}

func csvRow(it models.MenuItem) []string {
	return []string{
		it.VenueCity, it.VenueInstitution, it.VenueName, it.Date, it.Category,
		it.ItemName, formatPrice(it.PriceStudent), formatPrice(it.PriceStaff),
		deref(it.ItemID), it.SourceRef,
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewTable returns a go-pretty table writer mirrored to w.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderMenuTable prints items as a human-readable table.
func RenderMenuTable(w io.Writer, items []models.MenuItem) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"Date", "Venue", "Category", "Item", "Student", "Staff"})
	for _, it := range items {
		venue := it.VenueName
		if it.VenueCity != "" {
			venue = it.VenueCity + " / " + venue
		}
		t.AppendRow(table.Row{it.Date, venue, it.Category, it.ItemName, formatPrice(it.PriceStudent), formatPrice(it.PriceStaff)})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d items", len(items)), "", ""})
	t.Render()
}
