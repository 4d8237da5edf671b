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

type CommentService struct {
	comments  CommentStore
	videos    VideoStore
	relations RelationStore
}

func NewCommentService(comments CommentStore, videos VideoStore, relations RelationStore) *CommentService {
	return &CommentService{comments: comments, videos: videos, relations: relations}
}

// List returns one page of comments on a video, newest first
func (s *CommentService) List(ctx context.Context, videoID uint, limit, offset int) ([]dto.CommentResponse, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListComments")

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, 0, storeError(err, apperrors.ErrVideoNotFound)
	}

	comments, total, err := s.comments.ListByVideo(ctx, videoID, limit, offset)
	if err != nil {
		return nil, 0, storeError(err, nil)
	}

	res := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		res = append(res, dto.NewCommentResponse(&comments[i]))
	}
	return res, total, nil
}

func (s *CommentService) Add(ctx context.Context, ownerID, videoID uint, content string) (*dto.CommentResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AddComment")

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "content is required")
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Comment added").
		Uint("comment_id", comment.ID).
		Uint("video_id", videoID).
		Log()

	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *CommentService) Update(ctx context.Context, ownerID, commentID uint, content string) (*dto.CommentResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateComment")

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "content is required")
	}

	comment, err := s.owned(ctx, ownerID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Content = content

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, storeError(err, apperrors.ErrCommentNotFound)
	}

	res := dto.NewCommentResponse(comment)
	return &res, nil
}

func (s *CommentService) Delete(ctx context.Context, ownerID, commentID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteComment")

	if _, err := s.owned(ctx, ownerID, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return storeError(err, apperrors.ErrCommentNotFound)
	}
	if err := s.relations.DeleteLikesForTarget(ctx, commentID, model.TargetComment); err != nil {
		logger.WarnWithContext(ctx, "Failed to delete likes of removed comment").
			Uint("comment_id", commentID).
			Err(err).
			Log()
	}
	return nil
}

func (s *CommentService) owned(ctx context.Context, ownerID, commentID uint) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCommentNotFound)
	}
	if comment.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}
