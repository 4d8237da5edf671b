package router

import (
	"time"

	"github.com/Payphone-Digital/videotube/config"
	"github.com/Payphone-Digital/videotube/internal/handler"
	"github.com/Payphone-Digital/videotube/internal/middleware"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/Payphone-Digital/videotube/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Video     *handler.VideoHandler
	Comment   *handler.CommentHandler
	Tweet     *handler.TweetHandler
	Toggle    *handler.ToggleHandler
	Playlist  *handler.PlaylistHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

// Limiters holds the two rate limits: one for every API route and a
// stricter one for login and refresh
type Limiters struct {
	API  ratelimit.Limiter
	Auth ratelimit.Limiter
}

type Router struct {
	handlers Handlers
	jwtMw    *middleware.JWTMiddleware
	limiters Limiters
	Config   *config.Config
}

func NewRouter(handlers Handlers, jwtMw *middleware.JWTMiddleware, limiters Limiters, config *config.Config) *Router {
	return &Router{
		handlers: handlers,
		jwtMw:    jwtMw,
		limiters: limiters,
		Config:   config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	// ClientIP keys the rate limits, so forwarded headers count only from known proxies
	if err := router.SetTrustedProxies(r.Config.App.TrustedProxies); err != nil {
		logger.GetLogger().Error("Invalid trusted proxies, trusting none",
			zap.Strings("trusted_proxies", r.Config.App.TrustedProxies),
			zap.Error(err),
		)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ContextMiddleware(r.Config.App.Timeout))
	router.Use(middleware.SecurityLoggingMiddleware(apiPrefix + "/users/login"))
	router.Use(middleware.CORS(r.Config.App.CORSOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", r.handlers.Health.HealthCheck)

		v1 := api.Group("/v1")
		v1.Use(middleware.RateLimit(r.limiters.API, "api"))
		{
			v1.GET("/healthcheck", r.handlers.Health.Liveness)

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.videoRoutes(v1)
			r.commentRoutes(v1)
			r.tweetRoutes(v1)
			r.likeRoutes(v1)
			r.subscriptionRoutes(v1)
			r.playlistRoutes(v1)
			r.dashboardRoutes(v1)
		}
	}

	return router
}

// RateLimitWindow converts a window configured in seconds
func RateLimitWindow(seconds int) time.Duration {
	if seconds <= 0 {
		return time.Minute
	}
	return time.Duration(seconds) * time.Second
}
