package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CurrentUser returns the caller's own profile
func (h *UserHandler) CurrentUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CurrentUser")

	user, err := h.users.GetByID(ctx, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "CurrentUser")
		return
	}

	respond(c, http.StatusOK, user, constants.MsgUserFetched)
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateAccount")

	var req dto.UpdateAccountRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	user, err := h.users.UpdateAccount(ctx, currentUserID(c), req)
	if err != nil {
		respondError(ctx, c, err, "UpdateAccount")
		return
	}

	respond(c, http.StatusOK, user, constants.MsgAccountUpdated)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "UpdateAvatar", h.users.UpdateAvatar, constants.MsgAvatarUpdated)
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "UpdateCoverImage", h.users.UpdateCoverImage, constants.MsgCoverUpdated)
}

func (h *UserHandler) updateImage(c *gin.Context, function string, update func(context.Context, uint, string) (*dto.UserResponse, error), message string) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", function)

	var req dto.UpdateImageRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	user, err := update(ctx, currentUserID(c), req.URL)
	if err != nil {
		respondError(ctx, c, err, function)
		return
	}

	respond(c, http.StatusOK, user, message)
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "WatchHistory")

	videos, err := h.users.WatchHistory(ctx, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "WatchHistory")
		return
	}

	respond(c, http.StatusOK, videos, constants.MsgHistoryFetched)
}
