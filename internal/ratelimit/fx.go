package ratelimit

import (
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"go.uber.org/fx"
)

var Module = fx.Module("ratelimit",
	fx.Provide(
		fx.Annotate(
			func(cfg *config.Config) *InMemoryLimiter {
				return NewInMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			},
			fx.As(new(Limiter)),
		),
	),
)
