package router

import "github.com/gin-gonic/gin"

func (r *Router) likeRoutes(version *gin.RouterGroup) {
	likes := version.Group("/likes")
	likes.Use(r.jwtMw.RequireAuth())
	{
		likes.POST("/toggle/v/:videoId", r.handlers.Toggle.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", r.handlers.Toggle.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", r.handlers.Toggle.ToggleTweetLike)
		likes.GET("/videos", r.handlers.Toggle.LikedVideos)
	}
}

func (r *Router) subscriptionRoutes(version *gin.RouterGroup) {
	subs := version.Group("/subscriptions")
	subs.Use(r.jwtMw.RequireAuth())
	{
		subs.POST("/c/:channelId", r.handlers.Toggle.ToggleSubscription)
		subs.GET("/c/:channelId", r.handlers.Toggle.Subscribers)
		subs.GET("/u/:subscriberId", r.handlers.Toggle.Subscriptions)
	}
}
