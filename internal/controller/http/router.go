package http

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Session      *Session
	User         *UserHandler
	Video        *VideoHandler
	Comment      *CommentHandler
	Like         *LikeHandler
	Subscription *SubscriptionHandler
	Playlist     *PlaylistHandler
	Tweet        *TweetHandler
	Dashboard    *DashboardHandler
}

// RegisterRoutes mounts the versioned API on api.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	auth := h.Session.RequireAuth()
	optional := h.Session.OptionalAuth()

	api.GET("/healthcheck", h.Dashboard.HealthCheck)

	users := api.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh-token", h.User.RefreshToken)
		users.GET("/c/:username", optional, h.User.ChannelProfile)

		users.POST("/logout", auth, h.User.Logout)
		users.GET("/current-user", auth, h.User.CurrentUser)
		users.PATCH("/change-password", auth, h.User.ChangePassword)
		users.PATCH("/update-account", auth, h.User.UpdateAccount)
		users.PATCH("/avatar", auth, h.User.UpdateAvatar)
		users.PATCH("/cover-image", auth, h.User.UpdateCoverImage)
		users.GET("/history", auth, h.User.WatchHistory)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", optional, h.Video.ListVideos)
		videos.GET("/:videoId", optional, h.Video.GetVideo)
		videos.POST("", auth, h.Video.PublishVideo)
		videos.PATCH("/:videoId", auth, h.Video.UpdateVideo)
		videos.DELETE("/:videoId", auth, h.Video.DeleteVideo)
		videos.PATCH("/toggle/publish/:videoId", auth, h.Video.TogglePublish)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:videoId", optional, h.Comment.ListComments)
		comments.POST("/:videoId", auth, h.Comment.AddComment)
		comments.PATCH("/c/:commentId", auth, h.Comment.UpdateComment)
		comments.DELETE("/c/:commentId", auth, h.Comment.DeleteComment)
	}

	likes := api.Group("/likes", auth)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.LikedVideos)
	}

	subscriptions := api.Group("/subscriptions", auth)
	{
		subscriptions.POST("/c/:channelId", h.Subscription.ToggleSubscription)
		subscriptions.GET("/c/:channelId", h.Subscription.ChannelSubscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.SubscribedChannels)
	}

	playlists := api.Group("/playlists", auth)
	{
		playlists.POST("", h.Playlist.CreatePlaylist)
		playlists.GET("/user/playlist", h.Playlist.UserPlaylists)
		playlists.GET("/:playlistId", h.Playlist.GetPlaylist)
		playlists.PATCH("/:playlistId", h.Playlist.UpdatePlaylist)
		playlists.DELETE("/:playlistId", h.Playlist.DeletePlaylist)
		playlists.PATCH("/add/:playlistId", h.Playlist.AddVideos)
		playlists.PATCH("/remove/:playlistId", h.Playlist.RemoveVideos)
	}

	tweets := api.Group("/tweets", auth)
	{
		tweets.POST("", h.Tweet.CreateTweet)
		tweets.GET("/user/:userId", h.Tweet.UserTweets)
		tweets.PATCH("/:tweetId", h.Tweet.UpdateTweet)
		tweets.DELETE("/:tweetId", h.Tweet.DeleteTweet)
	}

	dashboard := api.Group("/dashboard", auth)
	{
		dashboard.GET("/stats", h.Dashboard.ChannelStats)
		dashboard.GET("/videos", h.Dashboard.ChannelVideos)
	}
}
