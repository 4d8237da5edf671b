package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/videotube/config"
	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/handler"
	"github.com/Payphone-Digital/videotube/internal/middleware"
	"github.com/Payphone-Digital/videotube/internal/repository"
	"github.com/Payphone-Digital/videotube/internal/router"
	"github.com/Payphone-Digital/videotube/internal/service"
	"github.com/Payphone-Digital/videotube/pkg/circuit"
	"github.com/Payphone-Digital/videotube/pkg/database"
	"github.com/Payphone-Digital/videotube/pkg/health"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/Payphone-Digital/videotube/pkg/ratelimit"
	"github.com/Payphone-Digital/videotube/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		Environment:     config.App.Environment,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	relationRepo := repository.NewRelationRepository(db)

	// Services
	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		AccessSecret:  config.Token.AccessSecret,
		AccessExpiry:  config.Token.AccessExpiry,
		RefreshSecret: config.Token.RefreshSecret,
		RefreshExpiry: config.Token.RefreshExpiry,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to configure token issuer", zap.Error(err))
	}
	credentials := service.NewCredentialStore(constants.BcryptCost)

	authService := service.NewAuthService(userRepo, credentials, tokens)
	userService := service.NewUserService(userRepo, videoRepo)
	videoService := service.NewVideoService(videoRepo, userRepo, relationRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, relationRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo, relationRepo)
	toggleService := service.NewToggleService(relationRepo, userRepo, videoRepo, commentRepo, tweetRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, relationRepo)

	// Health
	monitor := newHealthMonitor(db, redisClient)
	monitor.Start()
	defer monitor.Stop()

	// Handlers
	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieOptions{
			Secure:        config.Cookie.Secure,
			Domain:        config.Cookie.Domain,
			SameSite:      handler.ParseSameSite(config.Cookie.SameSite),
			AccessMaxAge:  config.Token.AccessExpiry,
			RefreshMaxAge: config.Token.RefreshExpiry,
		}),
		User:      handler.NewUserHandler(userService),
		Video:     handler.NewVideoHandler(videoService),
		Comment:   handler.NewCommentHandler(commentService),
		Tweet:     handler.NewTweetHandler(tweetService),
		Toggle:    handler.NewToggleHandler(toggleService),
		Playlist:  handler.NewPlaylistHandler(playlistService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Health:    handler.NewHealthHandler(monitor),
	}

	limiters := router.Limiters{
		API: newLimiter(redisClient, "api",
			config.RateLimit.Request, router.RateLimitWindow(config.RateLimit.Duration)),
		Auth: newLimiter(redisClient, "auth",
			config.RateLimit.AuthRequest, router.RateLimitWindow(config.RateLimit.AuthDuration)),
	}

	engine := router.NewRouter(
		handlers,
		middleware.NewJWTMiddleware(authService),
		limiters,
		config,
	).SetupRoutes()

	server := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shut down", zap.Error(err))
	}
}

// newLimiter prefers the shared Redis counter and falls back to process
// memory while Redis is failing or when it is disabled. Keys already carry
// the scope, so both limiters share one Redis prefix.
func newLimiter(redisClient redis.Client, scope string, requests int, window time.Duration) ratelimit.Limiter {
	memory := ratelimit.NewMemoryLimiter(requests, window)
	if !redisClient.IsEnabled() {
		return memory
	}

	primary := ratelimit.NewRedisLimiter(redisClient.Universal(), constants.RedisKeyRateLimit, requests, window)
	breaker := circuit.NewBreaker("ratelimit-"+scope, circuit.DefaultConfig(), logger.GetLogger())
	return ratelimit.NewFallbackLimiter(primary, memory, breaker, logger.GetLogger())
}

func newHealthMonitor(db *gorm.DB, redisClient redis.Client) *health.Monitor {
	monitor := health.NewMonitor(30*time.Second, logger.GetLogger())

	monitor.Register("database", true, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})
	monitor.Register("redis", false, func(ctx context.Context) error {
		if err := redisClient.Ping(ctx); err != nil {
			if errors.Is(err, redis.ErrDisabled) {
				return health.ErrDisabled
			}
			return err
		}
		return nil
	})

	return monitor
}
