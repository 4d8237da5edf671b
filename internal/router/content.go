package router

import "github.com/gin-gonic/gin"

func (r *Router) videoRoutes(version *gin.RouterGroup) {
	videos := version.Group("/videos")
	{
		// Signed-in viewers see their own drafts and get watch history
		videos.GET("", r.jwtMw.OptionalAuth(), r.handlers.Video.List)
		videos.GET("/:videoId", r.jwtMw.OptionalAuth(), r.handlers.Video.Get)

		protected := videos.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("", r.handlers.Video.Publish)
			protected.PATCH("/:videoId", r.handlers.Video.Update)
			protected.DELETE("/:videoId", r.handlers.Video.Delete)
			protected.PATCH("/:videoId/publish", r.handlers.Video.TogglePublish)
		}
	}
}

func (r *Router) commentRoutes(version *gin.RouterGroup) {
	comments := version.Group("/comments")
	{
		comments.GET("/:videoId", r.handlers.Comment.List)

		protected := comments.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/:videoId", r.handlers.Comment.Add)
			protected.PATCH("/c/:commentId", r.handlers.Comment.Update)
			protected.DELETE("/c/:commentId", r.handlers.Comment.Delete)
		}
	}
}

func (r *Router) tweetRoutes(version *gin.RouterGroup) {
	tweets := version.Group("/tweets")
	{
		tweets.GET("/user/:userId", r.handlers.Tweet.ListByUser)

		protected := tweets.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("", r.handlers.Tweet.Create)
			protected.PATCH("/:tweetId", r.handlers.Tweet.Update)
			protected.DELETE("/:tweetId", r.handlers.Tweet.Delete)
		}
	}
}

func (r *Router) playlistRoutes(version *gin.RouterGroup) {
	playlists := version.Group("/playlists")
	{
		playlists.GET("/user/:userId", r.handlers.Playlist.ListByUser)
		playlists.GET("/:playlistId", r.handlers.Playlist.Get)

		protected := playlists.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("", r.handlers.Playlist.Create)
			protected.PATCH("/:playlistId", r.handlers.Playlist.Update)
			protected.DELETE("/:playlistId", r.handlers.Playlist.Delete)
			protected.PATCH("/add/:videoId/:playlistId", r.handlers.Playlist.AddVideo)
			protected.PATCH("/remove/:videoId/:playlistId", r.handlers.Playlist.RemoveVideo)
		}
	}
}

func (r *Router) dashboardRoutes(version *gin.RouterGroup) {
	dashboard := version.Group("/dashboard")
	dashboard.Use(r.jwtMw.RequireAuth())
	{
		dashboard.GET("/stats", r.handlers.Dashboard.Stats)
		dashboard.GET("/videos", r.handlers.Dashboard.Videos)
	}
}
