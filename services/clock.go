package services

import (
	"context"
	"log/slog"
	"time"
)

const DefaultClockInterval = time.Second

// ClockTarget is advanced once per tick. *Session implements it.
type ClockTarget interface {
	AdvanceClock() bool
}

// RunClock advances the live match clock on every tick of ticks until ctx is done.
func RunClock(ctx context.Context, ticks <-chan time.Time, target ClockTarget, logger *slog.Logger) {
	logger.Info("match clock started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("match clock stopped")
			return
		case <-ticks:
			target.AdvanceClock()
		}
	}
}

// StartClock runs RunClock on a time.Ticker with the given interval.
func StartClock(ctx context.Context, interval time.Duration, target ClockTarget, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultClockInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("clock ticker configured", slog.Duration("interval", interval))
	RunClock(ctx, ticker.C, target, logger)
}
