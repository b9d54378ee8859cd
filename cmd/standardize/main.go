package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
