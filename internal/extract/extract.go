// Package extract implements the stream extractor: archive paths in on stdin,
// menu records out on stdout.
package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/dom"
	"github.com/mpr1255/2025s1-mlci/pkg/extractor"
	"github.com/mpr1255/2025s1-mlci/pkg/output"
	"github.com/mpr1255/2025s1-mlci/pkg/venue"
)

// InputKind selects how each listed file is read.
type InputKind string

const (
	InputHTML    InputKind = "html"
	InputPupJSON InputKind = "pup-json"
)

func ParseInputKind(s string) (InputKind, error) {
	switch InputKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", InputHTML:
		return InputHTML, nil
	case InputPupJSON, "pup":
		return InputPupJSON, nil
	}
	return "", fmt.Errorf("unknown input kind %q (want html or pup-json)", s)
}

type Options struct {
	Input  InputKind
	Format models.Format
	Now    time.Time
}

// Summary counts what one stream produced.
type Summary struct {
	Files  int
	Items  int
	Errors int
	NoMenu int
}

// Run reads one path per line from in and writes the records of every file
// to out. Files that cannot be read or parsed are logged and skipped.
func Run(ctx context.Context, logger *slog.Logger, in io.Reader, out io.Writer, opts Options) (Summary, error) {
	var sum Summary
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	w, err := output.NewWriter(out, opts.Format)
	if err != nil {
		return sum, err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		sum.Files++

		items, err := extractFile(logger, path, opts)
		switch {
		case errors.Is(err, extractor.ErrNoMenuFound):
			sum.NoMenu++
			logger.Warn("No menu found", "file", path)
			continue
		case err != nil:
			sum.Errors++
			logger.Error("Failed to extract file", "file", path, "error", err)
			continue
		}

		sum.Items += len(items)
		if err := w.Write(items...); err != nil {
			return sum, fmt.Errorf("failed to write records: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("failed to read paths: %w", err)
	}
	if err := w.Close(); err != nil {
		return sum, fmt.Errorf("failed to write records: %w", err)
	}
	return sum, nil
}

func extractFile(logger *slog.Logger, path string, opts Options) ([]models.MenuItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v := venue.FromArchivePath(path)
	captured := common.CaptureDate(v.CapturedOn)
	if captured.IsZero() {
		captured = opts.Now
	}

	var doc *dom.Element
	switch opts.Input {
	case InputPupJSON:
		root, err := dom.ParsePupJSON(f)
		if err != nil {
			return nil, err
		}
		doc = dom.WrapAsMenuTable(root.ChildElements(nil), captured)
	default:
		doc, err = dom.Parse(f)
		if err != nil {
			return nil, err
		}
	}

	ectx := models.NewExtractContext(v, path, captured.Year())
	return extractor.New(logger, extractor.DefaultRoles).Extract(doc, ectx)
}
