package tasks

import (
	"context"
	"time"

	"github.com/ashcraft-tech/contact-api/internal/logging"
)

// Sweeper is implemented by anything that can drop expired rate-limit state.
type Sweeper interface {
	Sweep() int
}

// RateLimitSweep periodically purges expired rate-limit records so the
// in-memory map stays bounded. It never affects admission decisions.
type RateLimitSweep struct {
	sweeper  Sweeper
	interval time.Duration
}

// NewRateLimitSweep creates a new sweep task
func NewRateLimitSweep(sweeper Sweeper, interval time.Duration) *RateLimitSweep {
	return &RateLimitSweep{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Run sweeps on every tick until ctx is done and is the task's only entry
// point. It always returns nil so it can be handed to an errgroup.
func (rs *RateLimitSweep) Run(ctx context.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Starting rate limit sweep every %s", rs.interval)

	ticker := time.NewTicker(rs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := rs.sweeper.Sweep(); removed > 0 {
				logger.Debug("Rate limit sweep removed %d expired entries", removed)
			}
		case <-ctx.Done():
			logger.Debug("Rate limit sweep stopped")
			return nil
		}
	}
}
