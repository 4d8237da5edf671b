package service

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	"gorm.io/gorm"
)

// The store interfaces are satisfied by the gorm repositories in internal/repository.

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByIdentifier(ctx context.Context, username, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateRefreshToken(ctx context.Context, id uint, refreshToken *string) error
	AppendWatchHistory(ctx context.Context, userID, videoID uint) error
}

type VideoStore interface {
	List(ctx context.Context, filter dto.VideoFilter, includeUnpublished bool) ([]model.Video, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Video, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.Video, error)
	Create(ctx context.Context, video *model.Video) error
	Save(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	OwnerTotals(ctx context.Context, ownerID uint) (int64, int64, error)
}

type CommentStore interface {
	ListByVideo(ctx context.Context, videoID uint, limit, offset int) ([]model.Comment, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Save(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id uint) error
}

type TweetStore interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Tweet, error)
	GetByID(ctx context.Context, id uint) (*model.Tweet, error)
	Create(ctx context.Context, tweet *model.Tweet) error
	Save(ctx context.Context, tweet *model.Tweet) error
	Delete(ctx context.Context, id uint) error
}

type PlaylistStore interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Playlist, error)
	GetByID(ctx context.Context, id uint) (*model.Playlist, error)
	Create(ctx context.Context, playlist *model.Playlist) error
	Save(ctx context.Context, playlist *model.Playlist) error
	Delete(ctx context.Context, id uint) error
}

// RelationStore holds the toggle relations. ToggleLike and ToggleSubscription
// must be atomic with respect to concurrent callers on the same tuple.
type RelationStore interface {
	ToggleLike(ctx context.Context, actorID, targetID uint, kind model.TargetKind) (bool, error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (bool, error)
	LikedVideoIDs(ctx context.Context, userID uint) ([]uint, error)
	ListSubscribers(ctx context.Context, channelID uint) ([]model.Subscription, error)
	ListSubscriptions(ctx context.Context, subscriberID uint) ([]model.Subscription, error)
	CountSubscribers(ctx context.Context, channelID uint) (int64, error)
	CountLikesOnOwnerVideos(ctx context.Context, ownerID uint) (int64, error)
	DeleteLikesForTarget(ctx context.Context, targetID uint, kind model.TargetKind) error
}

// storeError maps a repository error to a domain error
func storeError(err error, notFound *apperrors.DomainError) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}
