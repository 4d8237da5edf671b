package service

import (
	"context"
	"strings"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
)

type TweetService struct {
	tweets    TweetStore
	users     UserStore
	relations RelationStore
}

func NewTweetService(tweets TweetStore, users UserStore, relations RelationStore) *TweetService {
	return &TweetService{tweets: tweets, users: users, relations: relations}
}

func (s *TweetService) Create(ctx context.Context, ownerID uint, content string) (*dto.TweetResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateTweet")

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "content is required")
	}

	tweet := &model.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Tweet created").
		Uint("tweet_id", tweet.ID).
		Log()

	res := dto.NewTweetResponse(tweet)
	return &res, nil
}

// ListByUser returns the tweets of a user, newest first
func (s *TweetService) ListByUser(ctx context.Context, userID uint) ([]dto.TweetResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListTweets")

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	tweets, err := s.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	res := make([]dto.TweetResponse, 0, len(tweets))
	for i := range tweets {
		res = append(res, dto.NewTweetResponse(&tweets[i]))
	}
	return res, nil
}

func (s *TweetService) Update(ctx context.Context, ownerID, tweetID uint, content string) (*dto.TweetResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateTweet")

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "content is required")
	}

	tweet, err := s.owned(ctx, ownerID, tweetID)
	if err != nil {
		return nil, err
	}
	tweet.Content = content
	if err := s.tweets.Save(ctx, tweet); err != nil {
		return nil, storeError(err, apperrors.ErrTweetNotFound)
	}

	res := dto.NewTweetResponse(tweet)
	return &res, nil
}

func (s *TweetService) Delete(ctx context.Context, ownerID, tweetID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteTweet")

	if _, err := s.owned(ctx, ownerID, tweetID); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return storeError(err, apperrors.ErrTweetNotFound)
	}
	if err := s.relations.DeleteLikesForTarget(ctx, tweetID, model.TargetTweet); err != nil {
		logger.WarnWithContext(ctx, "Failed to delete likes of removed tweet").
			Uint("tweet_id", tweetID).
			Err(err).
			Log()
	}
	return nil
}

func (s *TweetService) owned(ctx context.Context, ownerID, tweetID uint) (*model.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrTweetNotFound)
	}
	if tweet.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return tweet, nil
}
