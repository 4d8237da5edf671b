package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlists PlaylistService
}

func NewPlaylistHandler(playlists PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreatePlaylist")

	var req dto.PlaylistRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	playlist, err := h.playlists.Create(ctx, currentUserID(c), req)
	if err != nil {
		respondError(ctx, c, err, "CreatePlaylist")
		return
	}

	respond(c, http.StatusCreated, playlist, constants.MsgResourceCreated)
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUserPlaylists")

	userID, valid := parseID(ctx, c, "userId")
	if !valid {
		return
	}

	playlists, err := h.playlists.ListByUser(ctx, userID)
	if err != nil {
		respondError(ctx, c, err, "ListUserPlaylists")
		return
	}

	respond(c, http.StatusOK, playlists, constants.MsgResourceFetched)
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetPlaylist")

	playlistID, valid := parseID(ctx, c, "playlistId")
	if !valid {
		return
	}

	playlist, err := h.playlists.Get(ctx, playlistID)
	if err != nil {
		respondError(ctx, c, err, "GetPlaylist")
		return
	}

	respond(c, http.StatusOK, playlist, constants.MsgResourceFetched)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePlaylist")

	playlistID, valid := parseID(ctx, c, "playlistId")
	if !valid {
		return
	}

	var req dto.UpdatePlaylistRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	playlist, err := h.playlists.Update(ctx, currentUserID(c), playlistID, req)
	if err != nil {
		respondError(ctx, c, err, "UpdatePlaylist")
		return
	}

	respond(c, http.StatusOK, playlist, constants.MsgResourceUpdated)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeletePlaylist")

	playlistID, valid := parseID(ctx, c, "playlistId")
	if !valid {
		return
	}

	if err := h.playlists.Delete(ctx, currentUserID(c), playlistID); err != nil {
		respondError(ctx, c, err, "DeletePlaylist")
		return
	}

	respond(c, http.StatusOK, gin.H{}, constants.MsgResourceDeleted)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	h.modify(c, "AddPlaylistVideo", h.playlists.AddVideo)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	h.modify(c, "RemovePlaylistVideo", h.playlists.RemoveVideo)
}

func (h *PlaylistHandler) modify(c *gin.Context, function string, change func(context.Context, uint, uint, uint) (*dto.PlaylistResponse, error)) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", function)

	videoID, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}
	playlistID, valid := parseID(ctx, c, "playlistId")
	if !valid {
		return
	}

	playlist, err := change(ctx, currentUserID(c), playlistID, videoID)
	if err != nil {
		respondError(ctx, c, err, function)
		return
	}

	respond(c, http.StatusOK, playlist, constants.MsgPlaylistModified)
}
