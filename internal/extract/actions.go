package extract

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/models"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(models.FormatJSONL), Usage: "jsonl, json, csv or yaml"},
		&cli.StringFlag{Name: "input", Value: string(InputHTML), Usage: "html, or pup-json for pup 'div.meal json{}' output"},
	}
}

func ExtractAction(c *cli.Context) error {
	logger := config.NewLogger(c)

	format, err := models.ParseFormat(c.String("format"), models.FormatJSONL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	input, err := ParseInputKind(c.String("input"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sum, err := Run(c.Context, logger, os.Stdin, os.Stdout, Options{Input: input, Format: format})
	if err != nil {
		logger.Error("extract aborted", "error", err)
		os.Exit(2)
	}
	logger.Info("Extraction complete", "files", sum.Files, "items", sum.Items, "errors", sum.Errors, "no_menu", sum.NoMenu)
	if sum.Errors > 0 {
		os.Exit(1)
	}
	return nil
}
