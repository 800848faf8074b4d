package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// Flags are the global flags every command understands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		&cli.StringFlag{Name: "db", Usage: "SQLite database path (default mensa_data.db)"},
		&cli.StringFlag{Name: "data-dir", Usage: "archive directory for raw pages (default data)"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug detail"},
	}
}

// FromCLI collects the flags the user actually set.
func FromCLI(c *cli.Context) Config {
	var out Config
	if c.IsSet("db") {
		out.DBPath = c.String("db")
	}
	if c.IsSet("data-dir") {
		out.DataDir = c.String("data-dir")
	}
	if c.IsSet("start-url") {
		out.StartURL = c.String("start-url")
	}
	if c.IsSet("workers") {
		out.Workers = c.Int("workers")
	}
	if c.IsSet("limit") {
		out.Limit = c.Int("limit")
	}
	if c.IsSet("overwrite") {
		out.Overwrite = c.Bool("overwrite")
	}
	if c.IsSet("user-agent") {
		out.UserAgent = c.String("user-agent")
	}
	if c.IsSet("timeout") {
		out.Timeout = c.Duration("timeout")
	}
	if c.IsSet("addr") {
		out.Addr = c.String("addr")
	}
	if c.IsSet("cors-origin") {
		out.CORSOrigins = c.StringSlice("cors-origin")
	}
	return out
}

// Resolve builds the effective config for a command.
func Resolve(c *cli.Context) (Config, error) {
	return Load(c.String("config"), os.Getenv, FromCLI(c))
}

// NewLogger returns the JSON stderr logger used by every command.
func NewLogger(c *cli.Context) *slog.Logger {
	return newLogger(os.Stderr, c.Bool("quiet"), c.Bool("verbose"))
}

func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case quiet:
		logLevel = slog.LevelError
	case verbose:
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
