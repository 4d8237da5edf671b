package service

import (
	"context"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
)

// ToggleService flips like and subscription relations. The at-most-one
// guarantee lives in RelationStore; this layer only checks the target.
type ToggleService struct {
	relations RelationStore
	users     UserStore
	videos    VideoStore
	comments  CommentStore
	tweets    TweetStore
}

func NewToggleService(relations RelationStore, users UserStore, videos VideoStore, comments CommentStore, tweets TweetStore) *ToggleService {
	return &ToggleService{
		relations: relations,
		users:     users,
		videos:    videos,
		comments:  comments,
		tweets:    tweets,
	}
}

// ToggleLike likes or unlikes a video, comment or tweet
func (s *ToggleService) ToggleLike(ctx context.Context, actorID uint, kind model.TargetKind, targetID uint) (*dto.ToggleResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ToggleLike")

	if !kind.Valid() || kind == model.TargetChannel {
		return nil, apperrors.ErrInvalidTargetKind
	}
	if targetID == 0 {
		return nil, apperrors.ErrInvalidID
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	active, err := s.relations.ToggleLike(ctx, actorID, targetID, kind)
	if err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Like toggled").
		String("target_kind", string(kind)).
		Uint("target_id", targetID).
		Bool("active", active).
		Log()

	return &dto.ToggleResponse{Active: active}, nil
}

// ToggleSubscription subscribes to or unsubscribes from a channel
func (s *ToggleService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (*dto.ToggleResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ToggleSubscription")

	if channelID == 0 {
		return nil, apperrors.ErrInvalidID
	}
	if subscriberID == channelID {
		return nil, apperrors.ErrSelfSubscription
	}
	if err := s.targetExists(ctx, model.TargetChannel, channelID); err != nil {
		return nil, err
	}

	active, err := s.relations.ToggleSubscription(ctx, subscriberID, channelID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Subscription toggled").
		Uint("channel_id", channelID).
		Bool("active", active).
		Log()

	return &dto.ToggleResponse{Active: active}, nil
}

func (s *ToggleService) targetExists(ctx context.Context, kind model.TargetKind, id uint) error {
	var err error
	var notFound *apperrors.DomainError

	switch kind {
	case model.TargetVideo:
		_, err = s.videos.GetByID(ctx, id)
		notFound = apperrors.ErrVideoNotFound
	case model.TargetComment:
		_, err = s.comments.GetByID(ctx, id)
		notFound = apperrors.ErrCommentNotFound
	case model.TargetTweet:
		_, err = s.tweets.GetByID(ctx, id)
		notFound = apperrors.ErrTweetNotFound
	case model.TargetChannel:
		_, err = s.users.GetByID(ctx, id)
		notFound = apperrors.ErrChannelNotFound
	default:
		return apperrors.ErrInvalidTargetKind
	}

	if err != nil {
		return storeError(err, notFound)
	}
	return nil
}

// LikedVideos returns the videos the user liked, most recent like first
func (s *ToggleService) LikedVideos(ctx context.Context, userID uint) ([]dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "LikedVideos")

	ids, err := s.relations.LikedVideoIDs(ctx, userID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	videos, err := s.videos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return dto.NewVideoResponses(videos), nil
}

// Subscribers lists who subscribes to channelID
func (s *ToggleService) Subscribers(ctx context.Context, channelID uint) ([]dto.SubscriptionResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Subscribers")

	if err := s.targetExists(ctx, model.TargetChannel, channelID); err != nil {
		return nil, err
	}
	subs, err := s.relations.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	res := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		if channel := dto.NewChannelResponse(sub.Subscriber); channel != nil {
			res = append(res, dto.SubscriptionResponse{Channel: *channel, SubscribedAt: sub.CreatedAt})
		}
	}
	return res, nil
}

// Subscriptions lists the channels subscriberID follows
func (s *ToggleService) Subscriptions(ctx context.Context, subscriberID uint) ([]dto.SubscriptionResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Subscriptions")

	if _, err := s.users.GetByID(ctx, subscriberID); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	subs, err := s.relations.ListSubscriptions(ctx, subscriberID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	res := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		if channel := dto.NewChannelResponse(sub.Channel); channel != nil {
			res = append(res, dto.SubscriptionResponse{Channel: *channel, SubscribedAt: sub.CreatedAt})
		}
	}
	return res, nil
}
