package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/internal/api"
	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/internal/crawl"
	"github.com/mpr1255/2025s1-mlci/internal/extract"
	"github.com/mpr1255/2025s1-mlci/internal/menus"
	"github.com/mpr1255/2025s1-mlci/internal/parse"
	"github.com/mpr1255/2025s1-mlci/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "mensa",
		Usage: "Archive, extract and serve university cafeteria menus",
		Flags: config.Flags(),
		Commands: []*cli.Command{
			{
				Name:   "crawl",
				Usage:  "Crawl the menu site and archive every venue page",
				Flags:  crawl.Flags(),
				Action: crawl.CrawlAction,
			},
			{
				Name:   "parse",
				Usage:  "Extract all archived pages into the database",
				Flags:  parse.Flags(),
				Action: parse.ParseAction,
			},
			{
				Name:      "extract",
				Usage:     "Read page paths from stdin and print menu records",
				UsageText: "find data -name '*.html' | mensa extract --format csv",
				Flags:     extract.Flags(),
				Action:    extract.ExtractAction,
			},
			{
				Name:      "menus",
				Usage:     "List stored menu items",
				ArgsUsage: "[venue id or name]",
				Flags:     menus.MenusFlags(),
				Action:    menus.MenusAction,
			},
			{
				Name:   "venues",
				Usage:  "List stored venues",
				Flags:  menus.VenuesFlags(),
				Action: menus.VenuesAction,
			},
			{
				Name:   "stats",
				Usage:  "Summarise the database",
				Flags:  menus.StatsFlags(),
				Action: menus.StatsAction,
			},
			{
				Name:   "runs",
				Usage:  "List recorded crawls",
				Flags:  menus.HistoryFlags(),
				Action: menus.RunsAction,
			},
			{
				Name:   "pages",
				Usage:  "List archived pages",
				Flags:  menus.HistoryFlags(),
				Action: menus.PagesAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a short usage guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the menus over HTTP",
				Flags:  api.Flags(),
				Action: api.ServeAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
