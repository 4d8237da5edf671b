package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// ListByOwner returns every tweet of ownerID, newest first
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Tweet, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "TweetListByOwner")

	start := time.Now()
	var tweets []model.Tweet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tweets).Error
	logResult(ctx, "Tweets listed", start, err)
	return tweets, err
}

func (r *TweetRepository) GetByID(ctx context.Context, id uint) (*model.Tweet, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "TweetGetByID")

	start := time.Now()
	var tweet model.Tweet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error
	logResult(ctx, "Tweet fetched", start, err)
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "TweetCreate")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(tweet).Error
	logResult(ctx, "Tweet created", start, err)
	return err
}

func (r *TweetRepository) Save(ctx context.Context, tweet *model.Tweet) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "TweetSave")

	start := time.Now()
	err := r.db.WithContext(ctx).Save(tweet).Error
	logResult(ctx, "Tweet saved", start, err)
	return err
}

func (r *TweetRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "TweetDelete")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Tweet{}, id)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	logResult(ctx, "Tweet deleted", start, result.Error)
	return result.Error
}
