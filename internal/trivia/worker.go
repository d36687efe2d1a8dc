package trivia

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer refreshes the category cache on an interval so listings rarely miss.
type CacheWarmer struct {
	svc      *Service
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewCacheWarmer(svc *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheWarmer{
		svc:      svc,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
		interval: interval,
		timeout:  4 * time.Second,
	}
}

// Run blocks until context cancellation.
func (w *CacheWarmer) Run(ctx context.Context) error {
	if w.svc == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CacheWarmer) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.svc.RefreshCategories(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Msg("category cache refreshed")
}
