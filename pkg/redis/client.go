package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrDisabled is returned by operations on a client built with Enabled=false
var ErrDisabled = errors.New("redis is disabled")

type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Client is the narrow surface the rest of the service needs from Redis
type Client interface {
	IsEnabled() bool
	Ping(ctx context.Context) error
	Close() error
	// Universal exposes the underlying client, nil when disabled
	Universal() redis.UniversalClient
}

type client struct {
	rdb    redis.UniversalClient
	logger *zap.Logger
}

// NewClient builds a client. A disabled config yields a client whose
// operations return ErrDisabled, so callers can wire it unconditionally.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Redis disabled by configuration")
		return &client{logger: logger}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Keep the client; go-redis reconnects when the server comes back
		logger.Warn("Redis ping failed at startup",
			zap.String("address", addr),
			zap.Error(err),
		)
	} else {
		logger.Info("Successfully connected to Redis",
			zap.String("address", addr),
			zap.Int("database", cfg.DB),
		)
	}

	return &client{rdb: rdb, logger: logger}
}

// NewFromUniversal wraps an existing go-redis client
func NewFromUniversal(rdb redis.UniversalClient, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{rdb: rdb, logger: logger}
}

func (c *client) IsEnabled() bool {
	return c.rdb != nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return ErrDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *client) Universal() redis.UniversalClient {
	return c.rdb
}
