package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quadrodev/quadro/cmd"
	"github.com/quadrodev/quadro/internal/logging"
)

func main() {
	// Without a log file, slog keeps its stderr default
	_ = logging.Init()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
