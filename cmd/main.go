package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ebay_pricer/internal/application"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}

	slog.Info("application stopped")
}
