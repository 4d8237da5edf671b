package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/gorm"
)

// UserService manages the profile of the authenticated user
type UserService struct {
	users  UserStore
	videos VideoStore
}

func NewUserService(users UserStore, videos VideoStore) *UserService {
	return &UserService{users: users, videos: videos}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	res := dto.NewUserResponse(user)
	return &res, nil
}

// UpdateAccount changes full name and/or email. The record is validated before the write.
func (s *UserService) UpdateAccount(ctx context.Context, userID uint, req dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateAccount")

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" && email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "full name or email is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	fields := map[string]interface{}{}
	if fullName != "" {
		user.FullName = fullName
		fields["full_name"] = fullName
	}
	if email != "" && email != user.Email {
		other, err := s.users.GetByIdentifier(ctx, "", email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeError(err, nil)
		}
		if other != nil && other.ID != user.ID {
			return nil, apperrors.WithMessage(apperrors.ErrUserExists, "email is already in use")
		}
		user.Email = email
		fields["email"] = email
	}

	if err := user.Validate(); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.WithMessage(apperrors.ErrUserExists, "email is already in use")
		}
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	logger.InfoWithContext(ctx, "Account updated").
		Uint("user_id", user.ID).
		Int("fields", len(fields)).
		Log()

	res := dto.NewUserResponse(user)
	return &res, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, url string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateAvatar")
	return s.updateImage(ctx, userID, "avatar_url", url)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, url string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateCoverImage")
	return s.updateImage(ctx, userID, "cover_image_url", url)
}

func (s *UserService) updateImage(ctx context.Context, userID uint, column, url string) (*dto.UserResponse, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "image url is required")
	}

	if err := s.users.UpdateFields(ctx, userID, map[string]interface{}{column: url}); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	logger.InfoWithContext(ctx, "Profile image updated").
		Uint("user_id", userID).
		String("column", column).
		Log()

	return s.GetByID(ctx, userID)
}

// WatchHistory returns watched videos, oldest first
func (s *UserService) WatchHistory(ctx context.Context, userID uint) ([]dto.VideoResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "WatchHistory")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	videos, err := s.videos.GetByIDs(ctx, user.WatchHistory)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return dto.NewVideoResponses(videos), nil
}
