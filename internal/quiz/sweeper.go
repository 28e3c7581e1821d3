package quiz

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically evicts expired rounds from a MemoryStore.
type Sweeper struct {
	store    *MemoryStore
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweeper(store *MemoryStore, interval time.Duration, logger zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "quiz_round_sweeper").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *Sweeper) Run(ctx context.Context) error {
	if w.store == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := w.store.Sweep(); removed > 0 {
				w.logger.Debug().Int("removed", removed).Msg("expired quiz rounds evicted")
			}
		}
	}
}
