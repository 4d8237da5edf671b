package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/dto"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// List returns one page of videos matching the filter and the total match count.
// Unless the filter names a user, only published videos are listed.
func (r *VideoRepository) List(ctx context.Context, filter dto.VideoFilter, includeUnpublished bool) ([]model.Video, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoList")

	logger.DebugWithContext(ctx, "Listing videos").
		String("query", filter.Query).
		String("sort_by", filter.SortBy).
		Uint("user_id", filter.UserID).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Log()

	start := time.Now()
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if filter.UserID != 0 {
		query = query.Where("owner_id = ?", filter.UserID)
	}
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.Query != "" {
		pattern := containsPattern(filter.Query)
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logResult(ctx, "Count videos", start, err)
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Owner").
		Order(orderClause(filter.SortBy, filter.SortType)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&videos).Error

	logger.DebugWithContext(ctx, "Videos listed").
		Int64("total", total).
		Int("returned_count", len(videos)).
		Duration(time.Since(start)).
		Err(err).
		Log()

	return videos, total, err
}

func (r *VideoRepository) GetByID(ctx context.Context, id uint) (*model.Video, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoGetByID")

	start := time.Now()
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&video).Error
	logResult(ctx, "Video fetched", start, err)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs returns videos in the order of ids, skipping ids that no longer exist
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Video, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoGetByIDs")

	if len(ids) == 0 {
		return []model.Video{}, nil
	}

	start := time.Now()
	var found []model.Video
	err := r.db.WithContext(ctx).Preload("Owner").Where("id IN ?", ids).Find(&found).Error
	logResult(ctx, "Videos fetched by ids", start, err)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	ordered := make([]model.Video, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoCreate")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(video).Error
	logResult(ctx, "Video created", start, err)
	return err
}

func (r *VideoRepository) Save(ctx context.Context, video *model.Video) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoSave")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Owner").Save(video).Error
	logResult(ctx, "Video saved", start, err)
	return err
}

func (r *VideoRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoDelete")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Video{}, id)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	logResult(ctx, "Video deleted", start, result.Error)
	return result.Error
}

// IncrementViews bumps the view counter in a single statement
func (r *VideoRepository) IncrementViews(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoIncrementViews")

	start := time.Now()
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	logResult(ctx, "Video views incremented", start, err)
	return err
}

// OwnerTotals returns the number of videos and the summed views of ownerID
func (r *VideoRepository) OwnerTotals(ctx context.Context, ownerID uint) (int64, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "VideoOwnerTotals")

	start := time.Now()
	var totals struct {
		Videos int64
		Views  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("COUNT(*) AS videos, COALESCE(SUM(views), 0) AS views").
		Where("owner_id = ?", ownerID).
		Scan(&totals).Error
	logResult(ctx, "Owner video totals", start, err)
	return totals.Videos, totals.Views, err
}
