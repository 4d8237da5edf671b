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

type VideoService struct {
	videos    VideoStore
	users     UserStore
	relations RelationStore
}

func NewVideoService(videos VideoStore, users UserStore, relations RelationStore) *VideoService {
	return &VideoService{videos: videos, users: users, relations: relations}
}

// List pages through videos. Unpublished videos are included only when the
// viewer lists their own channel.
func (s *VideoService) List(ctx context.Context, filter dto.VideoFilter, viewerID uint) ([]dto.VideoResponse, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListVideos")

	includeUnpublished := viewerID != 0 && filter.UserID == viewerID
	videos, total, err := s.videos.List(ctx, filter, includeUnpublished)
	if err != nil {
		return nil, 0, storeError(err, nil)
	}
	return dto.NewVideoResponses(videos), total, nil
}

func (s *VideoService) Publish(ctx context.Context, ownerID uint, req dto.PublishVideoRequest) (*dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "PublishVideo")

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and description are required")
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		IsPublished:  true,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Video published").
		Uint("video_id", video.ID).
		Uint("owner_id", ownerID).
		Log()

	res := dto.NewVideoResponse(video)
	return &res, nil
}

// Get returns a video and counts the view. An authenticated viewer also gets
// the video appended to their watch history.
func (s *VideoService) Get(ctx context.Context, id, viewerID uint) (*dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetVideo")

	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperrors.ErrVideoNotFound
	}

	if err := s.videos.IncrementViews(ctx, id); err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}
	video.Views++

	if viewerID != 0 {
		if err := s.users.AppendWatchHistory(ctx, viewerID, id); err != nil {
			// History is best effort; the video itself was served
			logger.WarnWithContext(ctx, "Failed to record watch history").
				Uint("video_id", id).
				Uint("viewer_id", viewerID).
				Err(err).
				Log()
		}
	}

	res := dto.NewVideoResponse(video)
	return &res, nil
}

func (s *VideoService) Update(ctx context.Context, ownerID, id uint, req dto.UpdateVideoRequest) (*dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateVideo")

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	thumbnail := strings.TrimSpace(req.ThumbnailURL)
	if title == "" && description == "" && thumbnail == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nothing to update")
	}

	video, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		video.Title = title
	}
	if description != "" {
		video.Description = description
	}
	if thumbnail != "" {
		video.ThumbnailURL = thumbnail
	}

	if err := s.videos.Save(ctx, video); err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}

	res := dto.NewVideoResponse(video)
	return &res, nil
}

func (s *VideoService) Delete(ctx context.Context, ownerID, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteVideo")

	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrVideoNotFound)
	}
	if err := s.relations.DeleteLikesForTarget(ctx, id, model.TargetVideo); err != nil {
		logger.WarnWithContext(ctx, "Failed to delete likes of removed video").
			Uint("video_id", id).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Video deleted").
		Uint("video_id", id).
		Uint("owner_id", ownerID).
		Log()
	return nil
}

// TogglePublish flips the published flag of an owned video
func (s *VideoService) TogglePublish(ctx context.Context, ownerID, id uint) (*dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "TogglePublish")

	video, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished

	if err := s.videos.Save(ctx, video); err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}

	res := dto.NewVideoResponse(video)
	return &res, nil
}

func (s *VideoService) owned(ctx context.Context, ownerID, id uint) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}
	if video.OwnerID != ownerID {
		logger.WarnWithContext(ctx, "Video mutation by non-owner").
			Uint("video_id", id).
			Uint("owner_id", video.OwnerID).
			Uint("caller_id", ownerID).
			Log()
		return nil, apperrors.ErrForbidden
	}
	return video, nil
}
