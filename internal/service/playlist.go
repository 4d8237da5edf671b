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

type PlaylistService struct {
	playlists PlaylistStore
	videos    VideoStore
	users     UserStore
}

func NewPlaylistService(playlists PlaylistStore, videos VideoStore, users UserStore) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uint, req dto.PlaylistRequest) (*dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreatePlaylist")

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and description are required")
	}

	playlist := &model.Playlist{OwnerID: ownerID, Name: name, Description: description}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, storeError(err, nil)
	}

	logger.InfoWithContext(ctx, "Playlist created").
		Uint("playlist_id", playlist.ID).
		Log()

	res := dto.NewPlaylistResponse(playlist)
	return &res, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uint) ([]dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListPlaylists")

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	res := make([]dto.PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		res = append(res, dto.NewPlaylistResponse(&playlists[i]))
	}
	return res, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID uint) (*dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetPlaylist")

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrPlaylistNotFound)
	}

	res := dto.NewPlaylistResponse(playlist)
	return &res, nil
}

func (s *PlaylistService) Update(ctx context.Context, ownerID, playlistID uint, req dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdatePlaylist")

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name or description is required")
	}

	playlist, err := s.owned(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	if err := s.playlists.Save(ctx, playlist); err != nil {
		return nil, storeError(err, apperrors.ErrPlaylistNotFound)
	}

	res := dto.NewPlaylistResponse(playlist)
	return &res, nil
}

func (s *PlaylistService) Delete(ctx context.Context, ownerID, playlistID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeletePlaylist")

	if _, err := s.owned(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return storeError(err, apperrors.ErrPlaylistNotFound)
	}
	return nil
}

// AddVideo appends a video once; adding a video already present is a no-op
func (s *PlaylistService) AddVideo(ctx context.Context, ownerID, playlistID, videoID uint) (*dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AddVideoToPlaylist")

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, storeError(err, apperrors.ErrVideoNotFound)
	}
	return s.modify(ctx, ownerID, playlistID, func(p *model.Playlist) bool { return p.AddVideo(videoID) })
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID uint) (*dto.PlaylistResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "RemoveVideoFromPlaylist")
	return s.modify(ctx, ownerID, playlistID, func(p *model.Playlist) bool { return p.RemoveVideo(videoID) })
}

func (s *PlaylistService) modify(ctx context.Context, ownerID, playlistID uint, change func(*model.Playlist) bool) (*dto.PlaylistResponse, error) {
	playlist, err := s.owned(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	if change(playlist) {
		if err := s.playlists.Save(ctx, playlist); err != nil {
			return nil, storeError(err, apperrors.ErrPlaylistNotFound)
		}
	}

	res := dto.NewPlaylistResponse(playlist)
	return &res, nil
}

func (s *PlaylistService) owned(ctx context.Context, ownerID, playlistID uint) (*model.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrPlaylistNotFound)
	}
	if playlist.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return playlist, nil
}
