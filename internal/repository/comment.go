package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByVideo returns one page of comments on videoID, newest first
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uint, limit, offset int) ([]model.Comment, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CommentListByVideo")

	start := time.Now()
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logResult(ctx, "Count comments", start, err)
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Owner").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	logResult(ctx, "Comments listed", start, err)
	return comments, total, err
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*model.Comment, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CommentGetByID")

	start := time.Now()
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	logResult(ctx, "Comment fetched", start, err)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CommentCreate")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(comment).Error
	logResult(ctx, "Comment created", start, err)
	return err
}

func (r *CommentRepository) Save(ctx context.Context, comment *model.Comment) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CommentSave")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Owner").Save(comment).Error
	logResult(ctx, "Comment saved", start, err)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CommentDelete")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Comment{}, id)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	logResult(ctx, "Comment deleted", start, result.Error)
	return result.Error
}
