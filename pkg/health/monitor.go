// Package health tracks the status of the backends the API depends on.
package health

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ErrDisabled marks a backend that is switched off rather than failing
var ErrDisabled = errors.New("backend disabled")

type CheckResult struct {
	Name         string        `json:"name"`
	Status       string        `json:"status"`
	Critical     bool          `json:"critical"`
	Latency      time.Duration `json:"latencyNs"`
	LastCheck    time.Time     `json:"lastCheck"`
	Message      string        `json:"message,omitempty"`
	CheckCount   int           `json:"checkCount"`
	FailureCount int           `json:"failureCount"`

	status Status
}

// CheckFunc probes one backend. Returning ErrDisabled reports it as disabled.
type CheckFunc func(ctx context.Context) error

type checker struct {
	fn       CheckFunc
	critical bool
}

type Monitor struct {
	mu       sync.RWMutex
	checkers map[string]checker
	results  map[string]*CheckResult
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewMonitor(interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Monitor{
		checkers: make(map[string]checker),
		results:  make(map[string]*CheckResult),
		interval: interval,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Register adds a named check. A failing critical check makes the service unhealthy.
func (m *Monitor) Register(name string, critical bool, fn CheckFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkers[name] = checker{fn: fn, critical: critical}
	m.logger.Info("Registered health checker",
		zap.String("name", name),
		zap.Bool("critical", critical),
	)
}

// Start runs the checks every interval until Stop is called
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll(ctx)
		}
	}
}

// CheckAll runs every registered check once and stores the results
func (m *Monitor) CheckAll(ctx context.Context) {
	m.mu.RLock()
	checkers := make(map[string]checker, len(m.checkers))
	for name, c := range m.checkers {
		checkers[name] = c
	}
	m.mu.RUnlock()

	for name, c := range checkers {
		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		start := time.Now()
		err := c.fn(checkCtx)
		cancel()

		result := CheckResult{
			Name:      name,
			Critical:  c.critical,
			Latency:   time.Since(start),
			LastCheck: start,
			status:    StatusHealthy,
		}
		switch {
		case errors.Is(err, ErrDisabled):
			result.status = StatusDisabled
		case err != nil:
			result.status = StatusUnhealthy
			result.Message = err.Error()
		}
		result.Status = result.status.String()

		m.mu.Lock()
		if existing, ok := m.results[name]; ok {
			result.CheckCount = existing.CheckCount
			result.FailureCount = existing.FailureCount
		}
		result.CheckCount++
		if result.status == StatusUnhealthy {
			result.FailureCount++
		}
		m.results[name] = &result
		m.mu.Unlock()

		if result.status == StatusUnhealthy {
			m.logger.Warn("Health check failed",
				zap.String("name", name),
				zap.Duration("latency", result.Latency),
				zap.Error(err),
			)
		}
	}
}

// Healthy reports false when any critical check last failed
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, result := range m.results {
		if result.Critical && result.status == StatusUnhealthy {
			return false
		}
	}
	return true
}

// Results returns a copy of the latest results sorted by name
func (m *Monitor) Results() []CheckResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]CheckResult, 0, len(m.results))
	for _, result := range m.results {
		results = append(results, *result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}
