package menus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/output"
)

func MenusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "only this day (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "city", Usage: "only this city"},
		&cli.StringFlag{Name: "venue", Usage: "venue name contains this text"},
		&cli.IntFlag{Name: "limit", Usage: "maximum number of items (0 = all)"},
		formatFlag(),
	}
}

func VenuesFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "fuzzy search on venue, institution and city"},
		formatFlag(),
	}
}

func StatsFlags() []cli.Flag {
	return []cli.Flag{formatFlag()}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(models.FormatTable), Usage: "table, csv, json, jsonl or yaml"}
}

func openDatabase(c *cli.Context) (*db.DB, models.Format) {
	logger := config.NewLogger(c)
	cfg, err := config.Resolve(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	format, err := models.ParseFormat(c.String("format"), models.FormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(2)
	}
	return database, format
}

// MenusAction prints stored menu items. An optional argument (id or name)
// restricts the output to one venue.
func MenusAction(c *cli.Context) error {
	if err := common.ValidateDate(c.String("date")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	database, format := openDatabase(c)
	defer database.Close()

	filter := db.MenuFilter{
		Date:  c.String("date"),
		City:  c.String("city"),
		Venue: c.String("venue"),
		Limit: c.Int("limit"),
	}
	if c.NArg() > 0 {
		m, err := ResolveMensaArg(c.Context, c.Args().First(), database)
		if err != nil {
			return fmt.Errorf("failed to resolve venue: %w", err)
		}
		filter.MensaID = m.ID
	}

	items, err := database.QueryMenuItems(c.Context, filter)
	if err != nil {
		return fmt.Errorf("failed to query menus: %w", err)
	}
	if len(items) == 0 && format == models.FormatTable {
		fmt.Println("No menu items found")
		return nil
	}
	return output.WriteAll(os.Stdout, format, items)
}

func VenuesAction(c *cli.Context) error {
	database, format := openDatabase(c)
	defer database.Close()

	mensas, err := database.ListMensas(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list venues: %w", err)
	}
	mensas = RankMensas(mensas, c.String("search"))
	return writeMensas(os.Stdout, format, mensas)
}

func StatsAction(c *cli.Context) error {
	database, format := openDatabase(c)
	defer database.Close()

	stats, err := database.Stats(c.Context)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}
	return writeStats(os.Stdout, format, stats)
}

var errUnsupportedFormat = errors.New("format not supported for this command")

func writeMensas(w io.Writer, format models.Format, mensas []db.Mensa) error {
	if mensas == nil {
		mensas = []db.Mensa{}
	}
	switch format {
	case models.FormatTable:
		t := output.NewTable(w)
		t.AppendHeader(table.Row{"ID", "City", "Institution", "Venue", "Items", "First", "Last"})
		for _, m := range mensas {
			t.AppendRow(table.Row{m.ID, m.City, m.University, m.Name, m.ItemCount, m.FirstDate, m.LastDate})
		}
		t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d venues", len(mensas)), "", "", ""})
		t.Render()
		return nil
	case models.FormatCSV:
		t := output.NewTable(w)
		t.AppendHeader(table.Row{"id", "city", "university", "name", "item_count", "first_date", "last_date"})
		for _, m := range mensas {
			t.AppendRow(table.Row{m.ID, m.City, m.University, m.Name, m.ItemCount, m.FirstDate, m.LastDate})
		}
		t.RenderCSV()
		return nil
	}
	return encodeList(w, format, mensas)
}

func writeStats(w io.Writer, format models.Format, s *db.Stats) error {
	if format != models.FormatTable {
		if format == models.FormatCSV {
			return fmt.Errorf("csv: %w", errUnsupportedFormat)
		}
		return encode(w, format, s)
	}

	t := output.NewTable(w)
	t.SetTitle("Mensa data")
	t.AppendRows([]table.Row{
		{"Venues", s.Mensas},
		{"Menu items", s.Items},
		{"Days", s.Days},
		{"Archived pages", s.Pages},
		{"Date range", dateRange(s.FirstDate, s.LastDate)},
	})
	t.Render()

	renderCounts(w, "Items per city", "City", s.ByCity)
	renderCounts(w, "Items per category", "Category", s.ByCategory)
	return nil
}

func dateRange(first, last string) string {
	if first == "" {
		return "-"
	}
	return first + " .. " + last
}

func renderCounts(w io.Writer, title, label string, counts []db.Count) {
	if len(counts) == 0 {
		return
	}
	t := output.NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{label, "Items"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Label, c.Count})
	}
	t.Render()
}

func encode(w io.Writer, format models.Format, v any) error {
	switch format {
	case models.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case models.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case models.FormatJSONL:
		return json.NewEncoder(w).Encode(v)
	}
	return fmt.Errorf("%s: %w", format, errUnsupportedFormat)
}
