package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/tui"
	"github.com/Deadmanswitch/encryption/internal/workers"
)

// App is the client application: the interactive UI in the foreground and
// the outbox upload workers in the background.
type App struct {
	ui      *tui.TUI
	workers *workers.Workers
	logger  *logger.Logger
}

func NewApp(ui *tui.TUI, workers *workers.Workers, logger *logger.Logger) *App {
	return &App{ui: ui, workers: workers, logger: logger}
}

// Run starts the background workers and blocks in the interactive UI until
// the user quits or the process receives a termination signal. A user quit
// is a normal exit, not an error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.workers.Run()

	if err := a.ui.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			a.logger.Info().Msg("client stopped by user")
			return nil
		}
		return err
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
