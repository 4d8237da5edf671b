package ratelimit

import (
	"context"

	"github.com/Payphone-Digital/videotube/pkg/circuit"
	"go.uber.org/zap"
)

// FallbackLimiter prefers the shared limiter and falls back to the local one
// while the shared backend is failing.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	breaker  *circuit.Breaker
	logger   *zap.Logger
}

func NewFallbackLimiter(primary, fallback Limiter, breaker *circuit.Breaker, logger *zap.Logger) *FallbackLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackLimiter{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (l *FallbackLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	var decision Decision
	err := l.breaker.Execute(func() error {
		var err error
		decision, err = l.primary.Allow(ctx, key)
		return err
	})
	if err == nil {
		return decision, nil
	}

	l.logger.Warn("Shared rate limiter unavailable, using local limiter",
		zap.String("key", key),
		zap.Error(err),
	)
	return l.fallback.Allow(ctx, key)
}
