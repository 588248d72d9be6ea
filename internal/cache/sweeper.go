package cache

import (
	"context"
	"time"

	"github.com/babburibeiro/WebAppCashUp/internal/log"
)

// Sweepable is any cache that can drop its expired entries.
type Sweepable interface {
	SweepExpired() int
}

// Sweeper periodically evicts expired entries from registered caches.
type Sweeper struct {
	caches []Sweepable
	logger *log.Logger
}

// NewSweeper creates a sweeper logging under the cache component.
func NewSweeper(logger *log.Logger) *Sweeper {
	return &Sweeper{logger: logger.WithComponent(log.ComponentCache)}
}

// Register adds a cache to the sweep rotation.
func (s *Sweeper) Register(c Sweepable) {
	s.caches = append(s.caches, c)
}

// Run sweeps at the given interval until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			total := 0
			for _, c := range s.caches {
				total += c.SweepExpired()
			}
			if total > 0 {
				s.logger.Debug("swept expired cache entries", "evicted", total)
			}
		case <-ctx.Done():
			return
		}
	}
}
