package handler

import (
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

// ToggleHandler serves likes and subscriptions
type ToggleHandler struct {
	toggles ToggleService
}

func NewToggleHandler(toggles ToggleService) *ToggleHandler {
	return &ToggleHandler{toggles: toggles}
}

func (h *ToggleHandler) ToggleVideoLike(c *gin.Context) {
	h.toggleLike(c, model.TargetVideo, "videoId")
}

func (h *ToggleHandler) ToggleCommentLike(c *gin.Context) {
	h.toggleLike(c, model.TargetComment, "commentId")
}

func (h *ToggleHandler) ToggleTweetLike(c *gin.Context) {
	h.toggleLike(c, model.TargetTweet, "tweetId")
}

func (h *ToggleHandler) toggleLike(c *gin.Context, kind model.TargetKind, param string) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ToggleLike")

	targetID, valid := parseID(ctx, c, param)
	if !valid {
		return
	}

	res, err := h.toggles.ToggleLike(ctx, currentUserID(c), kind, targetID)
	if err != nil {
		respondError(ctx, c, err, "ToggleLike")
		return
	}

	respondToggle(c, res)
}

func (h *ToggleHandler) ToggleSubscription(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ToggleSubscription")

	channelID, valid := parseID(ctx, c, "channelId")
	if !valid {
		return
	}

	res, err := h.toggles.ToggleSubscription(ctx, currentUserID(c), channelID)
	if err != nil {
		respondError(ctx, c, err, "ToggleSubscription")
		return
	}

	respondToggle(c, res)
}

func (h *ToggleHandler) LikedVideos(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "LikedVideos")

	videos, err := h.toggles.LikedVideos(ctx, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "LikedVideos")
		return
	}

	respond(c, http.StatusOK, videos, constants.MsgResourceFetched)
}

func (h *ToggleHandler) Subscribers(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Subscribers")

	channelID, valid := parseID(ctx, c, "channelId")
	if !valid {
		return
	}

	subs, err := h.toggles.Subscribers(ctx, channelID)
	if err != nil {
		respondError(ctx, c, err, "Subscribers")
		return
	}

	respond(c, http.StatusOK, subs, constants.MsgResourceFetched)
}

func (h *ToggleHandler) Subscriptions(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Subscriptions")

	subscriberID, valid := parseID(ctx, c, "subscriberId")
	if !valid {
		return
	}

	subs, err := h.toggles.Subscriptions(ctx, subscriberID)
	if err != nil {
		respondError(ctx, c, err, "Subscriptions")
		return
	}

	respond(c, http.StatusOK, subs, constants.MsgResourceFetched)
}

// respondToggle answers 201 when the relation was created and 200 when it was removed
func respondToggle(c *gin.Context, res *dto.ToggleResponse) {
	if res.Active {
		respond(c, http.StatusCreated, res, constants.MsgToggledOn)
		return
	}
	respond(c, http.StatusOK, res, constants.MsgToggledOff)
}
