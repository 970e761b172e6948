package ratelimit

import (
	"context"
	"time"

	"github.com/orgball2608/class-gallery/internal/timer"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// NewFromConfig builds the per client limiter and sweeps idle clients
// while the app runs.
func NewFromConfig(opts Opts) *InMemoryLimiter {
	l := NewInMemoryLimiter(opts.Config.Limits.RequestsPerSecond, time.Second, opts.Config.Limits.Burst)
	log := opts.Logger.WithComponent("RateLimiter")

	var sweeper timer.Handle
	opts.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper = timer.NewReal().Every(l.ttl, func() {
				if n := l.Sweep(); n > 0 {
					log.Debug("Dropped idle clients", "count", n)
				}
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if sweeper != nil {
				sweeper.Stop()
			}
			return nil
		},
	})
	return l
}

var Module = fx.Provide(
	NewFromConfig,
	func(l *InMemoryLimiter) Limiter { return l },
)
