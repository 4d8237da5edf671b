package handler

import (
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard DashboardService
}

func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChannelStats")

	stats, err := h.dashboard.Stats(ctx, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "ChannelStats")
		return
	}

	respond(c, http.StatusOK, stats, constants.MsgResourceFetched)
}

func (h *DashboardHandler) Videos(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChannelVideos")

	pagination := constants.ParsePaginationParams(c)
	videos, total, err := h.dashboard.Videos(ctx, currentUserID(c), pagination.Limit, pagination.Offset)
	if err != nil {
		respondError(ctx, c, err, "ChannelVideos")
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(http.StatusOK, videos, total, pagination, constants.MsgResourceFetched))
}
