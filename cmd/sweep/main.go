// Command sweep removes MongoDB wordlists and rows whose parent no longer
// exists. Such orphans are left behind when a manual cascade is interrupted
// between steps. It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/app"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/config"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "count orphans without deleting them")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall time limit for the sweep")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Storage.Backend != config.BackendMongo {
		logger.Warn("storage backend enforces cascades itself, sweeping mongo anyway",
			slog.String("backend", cfg.Storage.Backend),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeStore, err := app.OpenMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("connect to mongo", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	res, err := store.SweepOrphans(ctx, logger, *dryRun)
	if err != nil {
		logger.Error("orphan sweep failed", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	logger.Info("orphan sweep completed",
		slog.Bool("dry_run", *dryRun),
		slog.Int64("wordlists", res.Wordlists),
		slog.Int64("rows", res.Rows),
	)
}
