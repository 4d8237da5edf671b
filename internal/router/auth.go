package router

import (
	"github.com/Payphone-Digital/videotube/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// Public routes
		users.POST("/register", r.handlers.Auth.Register)

		limited := users.Group("")
		limited.Use(middleware.RateLimit(r.limiters.Auth, "auth"))
		{
			limited.POST("/login", r.handlers.Auth.Login)
			limited.POST("/refresh-token", r.handlers.Auth.RefreshToken)
		}

		// Protected routes
		protected := users.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.handlers.Auth.Logout)
			protected.POST("/change-password", r.handlers.Auth.ChangePassword)
		}
	}
}
