// Package extractor turns an archived weekly-menu page into flat menu item
// records. It holds no state across calls and is safe for concurrent use.
package extractor

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
)

// MenuTableClass marks the weekly menu table on the source site.
const MenuTableClass = "aw-weekly-menu"

var mealIDPattern = regexp.MustCompile(`^m(\d+)$`)

// Stats tallies the advisory conditions seen during one extraction.
type Stats struct {
	Items             int `json:"items"`
	UnresolvableDates int `json:"unresolvable_dates"`
	EmptyItemNames    int `json:"empty_item_names"`
	UnparsablePrices  int `json:"unparsable_prices"`
}

// Extractor runs the weekly-menu table algorithm.
type Extractor struct {
	Roles  RoleWords
	Logger *slog.Logger
}

// New returns an extractor using roles. A nil logger discards output.
func New(logger *slog.Logger, roles RoleWords) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if roles.empty() {
		roles = DefaultRoles
	}
	return &Extractor{Roles: roles, Logger: logger}
}

// Extract returns the menu items of doc in row-then-column order. When the
// document has no menu table it returns no items and a *NoMenuFoundError.
func (e *Extractor) Extract(doc *dom.Element, ctx models.ExtractContext) ([]models.MenuItem, error) {
	items, _, err := e.ExtractWithStats(doc, ctx)
	return items, err
}

// ExtractWithStats is Extract plus the advisory tally.
func (e *Extractor) ExtractWithStats(doc *dom.Element, ctx models.ExtractContext) ([]models.MenuItem, Stats, error) {
	var stats Stats
	if doc == nil {
		return nil, stats, ErrNilDocument
	}
	log := e.logger().With("source", ctx.SourceRef)

	table := doc.FirstDescendant(dom.And(dom.Tag("table"), dom.Class(MenuTableClass)))
	if table == nil {
		return nil, stats, &NoMenuFoundError{SourceRef: ctx.SourceRef}
	}

	if strings.TrimSpace(ctx.VenueName) == "" {
		ctx.VenueName = venueNameFromDocument(doc)
	}

	dates := columnDates(table, ctx.FallbackYear)
	for i, d := range dates {
		if d == "" {
			stats.UnresolvableDates++
			log.Debug("Skipping column with unresolvable date", "column", i)
		}
	}

	tbody := table.FirstChildMatching(dom.Tag("tbody"))
	if tbody == nil {
		return nil, stats, nil
	}

	var items []models.MenuItem
	category := ""
	for _, row := range tbody.ChildElements(dom.Tag("tr")) {
		if heading := categoryHeading(row); heading != nil {
			category = heading.Text()
			continue
		}

		for i, cell := range row.ChildElements(dom.Tag("td")) {
			if i >= len(dates) || dates[i] == "" {
				continue
			}
			for _, block := range cell.Descendants(dom.And(dom.Tag("div"), dom.Class("meal"))) {
				item, ok := e.itemFromBlock(block, &stats, log)
				if !ok {
					continue
				}
				item.VenueCity = ctx.VenueCity
				item.VenueInstitution = ctx.VenueInstitution
				item.VenueName = ctx.VenueName
				item.Date = dates[i]
				item.Category = category
				item.SourceRef = ctx.SourceRef
				items = append(items, item)
			}
		}
	}

	stats.Items = len(items)
	return items, stats, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Extractor) roles() RoleWords {
	if e.Roles.empty() {
		return DefaultRoles
	}
	return e.Roles
}

// columnDates resolves one date per header cell of the table head. A cell
// resolves from the first of its p elements that holds a date, else from its
// whole text. Unresolvable cells become "" and their column is skipped.
func columnDates(table *dom.Element, fallbackYear int) []string {
	thead := table.FirstChildMatching(dom.Tag("thead"))
	if thead == nil {
		return nil
	}
	row := thead.FirstDescendant(dom.Tag("tr"))
	if row == nil {
		row = thead
	}
	var dates []string
	for _, th := range row.ChildElements(dom.Tag("th")) {
		dates = append(dates, cellDate(th, fallbackYear))
	}
	return dates
}

func cellDate(th *dom.Element, fallbackYear int) string {
	for _, p := range th.Descendants(dom.Tag("p")) {
		if d, ok := ResolveDate(p.Text(), fallbackYear); ok {
			return d
		}
	}
	d, _ := ResolveDate(th.Text(), fallbackYear)
	return d
}

func categoryHeading(row *dom.Element) *dom.Element {
	for _, th := range row.Descendants(dom.Tag("th")) {
		if h3 := th.FirstDescendant(dom.Tag("h3")); h3 != nil {
			return h3
		}
	}
	return nil
}

func (e *Extractor) itemFromBlock(block *dom.Element, stats *Stats, log *slog.Logger) (models.MenuItem, bool) {
	var item models.MenuItem

	name := ""
	if desc := block.FirstDescendant(dom.Class("description")); desc != nil {
		name = desc.Text()
	}
	if name == "" {
		stats.EmptyItemNames++
		log.Debug("Discarding meal block without description", "id", block.AttrOr("id", ""))
		return item, false
	}
	item.ItemName = name

	if id, ok := block.Attr("id"); ok {
		id = normalizeMealID(id)
		item.ItemID = &id
	}

	roles := e.roles()
	for _, span := range block.Descendants(dom.HasAttr("title")) {
		title, _ := span.Attr("title")
		var target **float64
		switch {
		case roles.IsStudent(title):
			target = &item.PriceStudent
		case roles.IsStaff(title):
			target = &item.PriceStaff
		default:
			continue
		}
		text := span.Text()
		price, ok := ParsePrice(text)
		if !ok {
			stats.UnparsablePrices++
			log.Debug("Unparsable price", "title", title, "text", text)
			*target = nil
			continue
		}
		*target = &price
	}
	return item, true
}

func normalizeMealID(id string) string {
	if m := mealIDPattern.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return id
}

func venueNameFromDocument(doc *dom.Element) string {
	if title := doc.FirstDescendant(dom.Tag("title")); title != nil {
		if t := title.Text(); t != "" {
			return t
		}
	}
	return doc.FirstDescendant(dom.Tag("h1")).Text()
}
