package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Payphone-Digital/videotube/pkg/circuit"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	limiter := NewMemoryLimiter(3, time.Minute)
	limiter.WithNowFunc(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "1.2.3.4")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i, d.Allowed, err)
		}
	}

	d, _ := limiter.Allow(ctx, "1.2.3.4")
	if d.Allowed {
		t.Fatal("expected fourth request to be limited")
	}
	if d.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", d.RetryAfter)
	}

	if d, _ := limiter.Allow(ctx, "5.6.7.8"); !d.Allowed {
		t.Error("keys must be limited independently")
	}

	now = now.Add(time.Minute)
	if d, _ := limiter.Allow(ctx, "1.2.3.4"); !d.Allowed {
		t.Error("expected tokens to refill after the window")
	}
}

func TestMemoryLimiterEvictsIdleKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	limiter := NewMemoryLimiter(1, time.Second)
	limiter.WithNowFunc(func() time.Time { return now })

	_, _ = limiter.Allow(ctx, "a")
	now = now.Add(10 * time.Second)
	_, _ = limiter.Allow(ctx, "b")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.visitors["a"]; ok {
		t.Error("expected idle visitor to be evicted")
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	limiter := NewRedisLimiter(rdb, "test:rl:", 2, time.Minute)

	for i := 0; i < 2; i++ {
		d, err := limiter.Allow(ctx, "ip")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i, d.Allowed, err)
		}
	}

	d, err := limiter.Allow(ctx, "ip")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if d.Allowed || d.Remaining != 0 {
		t.Fatalf("expected limit, got %+v", d)
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v", d.RetryAfter)
	}

	mr.FastForward(time.Minute + time.Second)
	if d, _ := limiter.Allow(ctx, "ip"); !d.Allowed {
		t.Error("expected window to reset after expiry")
	}
}

type failingLimiter struct{ calls int }

func (f *failingLimiter) Allow(context.Context, string) (Decision, error) {
	f.calls++
	return Decision{}, errors.New("connection refused")
}

func TestFallbackLimiter(t *testing.T) {
	ctx := context.Background()
	primary := &failingLimiter{}
	fallback := NewMemoryLimiter(1, time.Minute)
	breaker := circuit.NewBreaker("ratelimit", circuit.Config{Threshold: 2, Timeout: time.Hour}, zap.NewNop())
	limiter := NewFallbackLimiter(primary, fallback, breaker, zap.NewNop())

	d, err := limiter.Allow(ctx, "ip")
	if err != nil || !d.Allowed {
		t.Fatalf("first request: allowed=%v err=%v", d.Allowed, err)
	}
	if d, _ := limiter.Allow(ctx, "ip"); d.Allowed {
		t.Error("fallback limiter must still enforce its limit")
	}

	_, _ = limiter.Allow(ctx, "ip")
	if primary.calls != 2 {
		t.Errorf("expected breaker to stop calling primary after 2 failures, got %d calls", primary.calls)
	}
}
