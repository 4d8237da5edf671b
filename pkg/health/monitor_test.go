package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMonitorCheckAll(t *testing.T) {
	m := NewMonitor(time.Minute, zap.NewNop())
	m.Register("database", true, func(context.Context) error { return nil })
	m.Register("redis", false, func(context.Context) error { return ErrDisabled })

	m.CheckAll(context.Background())

	if !m.Healthy() {
		t.Fatal("expected healthy monitor")
	}

	results := m.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "database" || results[0].Status != "healthy" {
		t.Errorf("database result = %+v", results[0])
	}
	if results[1].Name != "redis" || results[1].Status != "disabled" {
		t.Errorf("redis result = %+v", results[1])
	}
}

func TestMonitorCriticalFailure(t *testing.T) {
	m := NewMonitor(time.Minute, zap.NewNop())
	fail := true
	m.Register("database", true, func(context.Context) error {
		if fail {
			return errors.New("connection refused")
		}
		return nil
	})
	m.Register("cache", false, func(context.Context) error { return errors.New("down") })

	m.CheckAll(context.Background())
	if m.Healthy() {
		t.Fatal("expected unhealthy when a critical check fails")
	}

	fail = false
	m.CheckAll(context.Background())
	if !m.Healthy() {
		t.Fatal("non-critical failures must not make the service unhealthy")
	}

	for _, r := range m.Results() {
		if r.Name == "database" && (r.CheckCount != 2 || r.FailureCount != 1) {
			t.Errorf("database counts = %d/%d", r.CheckCount, r.FailureCount)
		}
	}
}

func TestMonitorStartStop(t *testing.T) {
	m := NewMonitor(time.Hour, zap.NewNop())
	ran := make(chan struct{}, 1)
	m.Register("probe", true, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	m.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expected initial check on Start")
	}
	m.Stop()
	m.Stop()
}
