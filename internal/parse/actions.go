package parse

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/storage"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "files parsed concurrently (default 4)"},
	}
}

func ParseAction(c *cli.Context) error {
	logger := config.NewLogger(c)
	startTime := time.Now()

	cfg, err := config.Resolve(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if _, err := os.Stat(cfg.DataDir); err != nil {
		logger.Error("archive directory not readable", "path", cfg.DataDir, "error", err)
		os.Exit(2)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(2)
	}
	defer database.Close()

	loader := NewLoader(logger, storage.New(cfg.DataDir), database, cfg.Workers)
	sum, err := loader.Run(c.Context)
	if err != nil {
		logger.Error("parse aborted", "error", err)
		os.Exit(2)
	}

	fmt.Printf("%d files processed, %d errors, %d without menu (%d items, %d stored, %s)\n",
		sum.Files, sum.Errors, sum.NoMenu, sum.Items, sum.Stored, time.Since(startTime).Round(time.Millisecond))
	if sum.Errors > 0 {
		os.Exit(1)
	}
	return nil
}
