package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Playlist, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "PlaylistListByOwner")

	start := time.Now()
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&playlists).Error
	logResult(ctx, "Playlists listed", start, err)
	return playlists, err
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uint) (*model.Playlist, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "PlaylistGetByID")

	start := time.Now()
	var playlist model.Playlist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error
	logResult(ctx, "Playlist fetched", start, err)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "PlaylistCreate")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(playlist).Error
	logResult(ctx, "Playlist created", start, err)
	return err
}

func (r *PlaylistRepository) Save(ctx context.Context, playlist *model.Playlist) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "PlaylistSave")

	start := time.Now()
	err := r.db.WithContext(ctx).Save(playlist).Error
	logResult(ctx, "Playlist saved", start, err)
	return err
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "PlaylistDelete")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Playlist{}, id)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	logResult(ctx, "Playlist deleted", start, result.Error)
	return result.Error
}
