package app

import (
	"context"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

// runSweeper periodically transitions expired pending and in-progress
// tasks to overdue until the context is canceled.
func runSweeper(ctx context.Context, tasks services.TaskService) {
	cfg := config.Global().Sweep
	if cfg.Disabled {
		globalLogger.Info().Msg("overdue sweeper disabled")
		return
	}

	globalLogger.Info().
		Dur("interval", cfg.Interval).
		Msg("starting overdue sweeper")

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			globalLogger.Info().Msg("stopped overdue sweeper")
			return
		case now := <-ticker.C:
			_, err := tasks.SweepOverdue(ctx, now)
			if err != nil {
				globalLogger.Error().
					Err(err).
					Msg("overdue sweep failed")
			}
		}
	}
}

// MustSweepOverdueOnce runs a single overdue pass and exits, for the
// sweep CLI command.
func MustSweepOverdueOnce() {
	svcs := newAppServices()

	count, err := svcs.tasks.SweepOverdue(context.Background(), time.Now())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("overdue sweep failed")
		panic(err)
	}
	globalLogger.Info().
		Int("count", count).
		Msg("overdue sweep done")
}
