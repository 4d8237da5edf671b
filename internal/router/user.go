package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	me := version.Group("/users/me")
	// All profile routes act on the caller
	me.Use(r.jwtMw.RequireAuth())
	{
		me.GET("", r.handlers.User.CurrentUser)
		me.PATCH("", r.handlers.User.UpdateAccount)
		me.PATCH("/avatar", r.handlers.User.UpdateAvatar)
		me.PATCH("/cover-image", r.handlers.User.UpdateCoverImage)
		me.GET("/history", r.handlers.User.WatchHistory)
	}
}
