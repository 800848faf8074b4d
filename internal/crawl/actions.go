package crawl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/fetcher"
	"github.com/mpr1255/2025s1-mlci/pkg/manifest"
	"github.com/mpr1255/2025s1-mlci/pkg/storage"
)

// Flags are the crawl command's own flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start-url", Usage: "landing page to start from (default " + config.DefaultStartURL + ")"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "concurrent fetches per level (default 4)"},
		&cli.IntFlag{Name: "limit", Usage: "stop after this many requests (0 = no limit)"},
		&cli.BoolFlag{Name: "overwrite", Usage: "replace pages already archived today"},
		&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header"},
		&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout (default 30s)"},
	}
}

func CrawlAction(c *cli.Context) error {
	logger := config.NewLogger(c)
	startTime := time.Now()

	cfg, err := config.Resolve(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	startURL, err := common.ValidateStartURL(cfg.StartURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(2)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	runID, err := database.StartRun(ctx, startURL)
	if err != nil {
		logger.Error("failed to record crawl run", "error", err)
		os.Exit(2)
	}

	f := fetcher.NewFetcher(fetcher.Options{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout})
	st := storage.New(cfg.DataDir)
	crawler, err := New(logger.With("run_id", runID), f, st, database, Options{
		StartURL:  startURL,
		Workers:   cfg.Workers,
		Limit:     cfg.Limit,
		Overwrite: cfg.Overwrite,
	})
	if err != nil {
		logger.Error("failed to create crawler", "error", err)
		os.Exit(2)
	}

	logger.Info("Starting crawl", "run_id", runID, "start_url", startURL, "workers", cfg.Workers, "limit", cfg.Limit, "overwrite", cfg.Overwrite)
	tally, runErr := crawler.Run(ctx)

	if err := database.FinishRun(context.WithoutCancel(ctx), runID, tally); err != nil {
		logger.Warn("Failed to store crawl tally", "run_id", runID, "error", err)
	}

	now := time.Now()
	m := manifest.Build(runID, startURL, manifestResults(crawler.Results()), st, now)
	if path, err := manifest.Write(m, st, now); err != nil {
		logger.Warn("Failed to write crawl manifest", "error", err)
	} else {
		logger.Info("Wrote crawl manifest", "file", path)
	}

	fmt.Printf("Crawl %s: %d requests, %d archived, %d skipped, %d failed (%s)\n",
		runID, tally.Requests, tally.Archived, tally.Skipped, tally.Failed, time.Since(startTime).Round(time.Millisecond))

	if runErr != nil {
		logger.Error("crawl interrupted", "error", runErr)
		os.Exit(1)
	}
	if tally.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func manifestResults(results []Result) []manifest.PageResult {
	out := make([]manifest.PageResult, 0, len(results))
	for _, r := range results {
		out = append(out, manifest.PageResult{
			URL:       r.URL,
			Kind:      string(r.Kind),
			FilePath:  r.FilePath,
			Links:     len(r.Links),
			Skipped:   r.Skipped,
			Error:     r.Error,
			ErrorType: r.ErrorType,
		})
	}
	return out
}
