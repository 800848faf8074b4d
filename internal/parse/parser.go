package parse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
	"github.com/mpr1255/2025s1-mlci/pkg/extractor"
	"github.com/mpr1255/2025s1-mlci/pkg/storage"
	"github.com/mpr1255/2025s1-mlci/pkg/venue"
)

// Summary tallies one pass over the archive.
type Summary struct {
	Files  int
	Items  int
	Stored int
	Errors int
	NoMenu int
}

// Loader extracts every archived page into the database.
type Loader struct {
	logger   *slog.Logger
	storage  *storage.Storage
	database *db.DB
	workers  int
	now      func() time.Time
}

func NewLoader(logger *slog.Logger, s *storage.Storage, database *db.DB, workers int) *Loader {
	if workers <= 0 {
		workers = 1
	}
	return &Loader{logger: logger, storage: s, database: database, workers: workers, now: time.Now}
}

// Run processes every archived HTML file. A file that fails is logged and
// counted, and does not stop the others; only ctx cancellation or an
// unreadable archive root aborts the run.
func (l *Loader) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	files, err := l.storage.ListHTML()
	if err != nil {
		return sum, err
	}
	sum.Files = len(files)
	l.logger.Info("Parsing archive", "root", l.storage.Root, "files", len(files), "workers", l.workers)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items, stored, err := l.loadFile(ctx, path)

			mu.Lock()
			defer mu.Unlock()
			sum.Items += items
			sum.Stored += stored
			switch {
			case errors.Is(err, extractor.ErrNoMenuFound):
				sum.NoMenu++
				l.logger.Warn("No menu table found", "file", path)
			case err != nil:
				sum.Errors++
				l.logger.Error("Failed to parse file", "file", path, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	return sum, ctx.Err()
}

func (l *Loader) loadFile(ctx context.Context, path string) (int, int, error) {
	raw, err := l.storage.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, err
	}

	v := venue.FromArchivePath(path)
	if !v.IsComplete() {
		return 0, 0, fmt.Errorf("cannot derive venue from path %s", path)
	}
	ectx := models.NewExtractContext(v, path, common.FallbackYear(v.CapturedOn, l.now()))

	items, stats, err := extractor.New(l.logger, extractor.DefaultRoles).ExtractWithStats(doc, ectx)
	if err != nil {
		return 0, 0, err
	}
	l.logger.Debug("Extracted file", "file", path, "items", stats.Items,
		"unresolvable_dates", stats.UnresolvableDates, "empty_names", stats.EmptyItemNames, "bad_prices", stats.UnparsablePrices)

	stored, err := l.database.UpsertMenu(ctx, items)
	if err != nil {
		return len(items), 0, err
	}
	return len(items), stored, nil
}
