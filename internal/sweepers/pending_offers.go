package sweepers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PendingOfferSweeper periodically purges stale unapproved offers
type PendingOfferSweeper struct {
	pool     *pgxpool.Pool
	logger   *zerolog.Logger
	interval time.Duration
	maxAge   time.Duration
	stopChan chan struct{}
}

// NewPendingOfferSweeper creates a sweeper that removes pending offers
// older than maxAge. Approved offers are never touched.
func NewPendingOfferSweeper(pool *pgxpool.Pool, logger *zerolog.Logger, interval, maxAge time.Duration) *PendingOfferSweeper {
	return &PendingOfferSweeper{
		pool:     pool,
		logger:   logger,
		interval: interval,
		maxAge:   maxAge,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (s *PendingOfferSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("max_age", s.maxAge).
		Msg("Starting pending offer sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Pending offer sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Pending offer sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			if err := s.PurgeStalePending(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Failed to purge stale pending offers")
			}
		}
	}
}

// Stop signals the sweeper to stop
func (s *PendingOfferSweeper) Stop() {
	close(s.stopChan)
}

// PurgeStalePending deletes offers still awaiting approval whose last
// update is older than maxAge.
func (s *PendingOfferSweeper) PurgeStalePending(ctx context.Context) error {
	s.logger.Debug().Msg("Running stale pending offer purge")

	tag, err := s.pool.Exec(ctx, `
		DELETE FROM market_products
		WHERE is_valid = FALSE AND updated_at < NOW() - $1::interval
	`, fmt.Sprintf("%d seconds", int(s.maxAge.Seconds())))
	if err != nil {
		return fmt.Errorf("failed to delete stale pending offers: %w", err)
	}

	if tag.RowsAffected() > 0 {
		s.logger.Info().
			Int64("purged", tag.RowsAffected()).
			Msg("Purged stale pending offers")
	}

	return nil
}
