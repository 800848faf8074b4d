package menus

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/output"
)

func HistoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of rows (0 = all)"},
		formatFlag(),
	}
}

// RunsAction lists recorded crawls, newest first.
func RunsAction(c *cli.Context) error {
	database, format := openDatabase(c)
	defer database.Close()

	runs, err := database.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return writeRuns(os.Stdout, format, runs)
}

// PagesAction lists the archived page index, newest first.
func PagesAction(c *cli.Context) error {
	database, format := openDatabase(c)
	defer database.Close()

	pages, err := database.ListPages(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	return writePages(os.Stdout, format, pages)
}

func writeRuns(w io.Writer, format models.Format, runs []db.ScrapeRun) error {
	if runs == nil {
		runs = []db.ScrapeRun{}
	}
	if format != models.FormatTable {
		return encodeList(w, format, runs)
	}

	t := output.NewTable(w)
	t.AppendHeader(table.Row{"Run", "Started", "Finished", "Requests", "Archived", "Skipped", "Failed"})
	for _, r := range runs {
		finished := "running"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Local().Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{r.RunID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), finished,
			r.Requests, r.Archived, r.Skipped, r.Failed})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d runs", len(runs)), "", "", "", "", "", ""})
	t.Render()
	return nil
}

func writePages(w io.Writer, format models.Format, pages []models.Page) error {
	if pages == nil {
		pages = []models.Page{}
	}
	if format != models.FormatTable {
		return encodeList(w, format, pages)
	}

	t := output.NewTable(w)
	t.AppendHeader(table.Row{"Fetched", "Lang", "Title", "File"})
	for _, p := range pages {
		t.AppendRow(table.Row{p.FetchedAt.Local().Format("2006-01-02 15:04"), p.Language, p.Title, p.FilePath})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d pages", len(pages)), ""})
	t.Render()
	return nil
}

// encodeList writes a slice in one of the structured formats.
func encodeList[T any](w io.Writer, format models.Format, list []T) error {
	if format == models.FormatJSONL {
		for _, v := range list {
			if err := encode(w, format, v); err != nil {
				return err
			}
		}
		return nil
	}
	return encode(w, format, list)
}
