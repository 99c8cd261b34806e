// Command server serves the dictionary HTTP API over the storage backend
// selected by STORAGE_BACKEND until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application stopped", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
