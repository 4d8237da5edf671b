package handler

import (
	"context"

	"github.com/Payphone-Digital/videotube/internal/dto"
	"github.com/Payphone-Digital/videotube/internal/model"
)

// The handlers depend on these method sets; *service.XService satisfies each.

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error
}

type UserService interface {
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateAccount(ctx context.Context, userID uint, req dto.UpdateAccountRequest) (*dto.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID uint, url string) (*dto.UserResponse, error)
	UpdateCoverImage(ctx context.Context, userID uint, url string) (*dto.UserResponse, error)
	WatchHistory(ctx context.Context, userID uint) ([]dto.VideoResponse, error)
}

type VideoService interface {
	List(ctx context.Context, filter dto.VideoFilter, viewerID uint) ([]dto.VideoResponse, int64, error)
	Publish(ctx context.Context, ownerID uint, req dto.PublishVideoRequest) (*dto.VideoResponse, error)
	Get(ctx context.Context, id, viewerID uint) (*dto.VideoResponse, error)
	Update(ctx context.Context, ownerID, id uint, req dto.UpdateVideoRequest) (*dto.VideoResponse, error)
	Delete(ctx context.Context, ownerID, id uint) error
	TogglePublish(ctx context.Context, ownerID, id uint) (*dto.VideoResponse, error)
}

type CommentService interface {
	List(ctx context.Context, videoID uint, limit, offset int) ([]dto.CommentResponse, int64, error)
	Add(ctx context.Context, ownerID, videoID uint, content string) (*dto.CommentResponse, error)
	Update(ctx context.Context, ownerID, commentID uint, content string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, ownerID, commentID uint) error
}

type TweetService interface {
	Create(ctx context.Context, ownerID uint, content string) (*dto.TweetResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.TweetResponse, error)
	Update(ctx context.Context, ownerID, tweetID uint, content string) (*dto.TweetResponse, error)
	Delete(ctx context.Context, ownerID, tweetID uint) error
}

type ToggleService interface {
	ToggleLike(ctx context.Context, actorID uint, kind model.TargetKind, targetID uint) (*dto.ToggleResponse, error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (*dto.ToggleResponse, error)
	LikedVideos(ctx context.Context, userID uint) ([]dto.VideoResponse, error)
	Subscribers(ctx context.Context, channelID uint) ([]dto.SubscriptionResponse, error)
	Subscriptions(ctx context.Context, subscriberID uint) ([]dto.SubscriptionResponse, error)
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID uint, req dto.PlaylistRequest) (*dto.PlaylistResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.PlaylistResponse, error)
	Get(ctx context.Context, playlistID uint) (*dto.PlaylistResponse, error)
	Update(ctx context.Context, ownerID, playlistID uint, req dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error)
	Delete(ctx context.Context, ownerID, playlistID uint) error
	AddVideo(ctx context.Context, ownerID, playlistID, videoID uint) (*dto.PlaylistResponse, error)
	RemoveVideo(ctx context.Context, ownerID, playlistID, videoID uint) (*dto.PlaylistResponse, error)
}

type DashboardService interface {
	Stats(ctx context.Context, ownerID uint) (*dto.ChannelStatsResponse, error)
	Videos(ctx context.Context, ownerID uint, limit, offset int) ([]dto.VideoResponse, int64, error)
}
