package api

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mpr1255/2025s1-mlci/internal/config"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "listen address (default :8080)"},
		&cli.StringSliceFlag{Name: "cors-origin", Usage: "allowed CORS origin, repeatable (default *)"},
	}
}

func ServeAction(c *cli.Context) error {
	logger := config.NewLogger(c)

	cfg, err := config.Resolve(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(2)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := NewServer(database, logger, cfg.CORSOrigins)
	if err := srv.ListenAndServe(ctx, cfg.Addr, 10*time.Second); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(2)
	}
	return nil
}
