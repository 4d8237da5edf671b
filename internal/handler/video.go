package handler

import (
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videos VideoService
}

func NewVideoHandler(videos VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// List serves GET /videos with page, limit, query, sortBy, sortType and userId
func (h *VideoHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListVideos")

	pagination := constants.ParsePaginationParams(c)
	filter := dto.VideoFilter{
		Query:    c.Query(constants.QueryParamQuery),
		SortBy:   c.DefaultQuery(constants.QueryParamSortBy, constants.DefaultSortBy),
		SortType: c.DefaultQuery(constants.QueryParamSortType, constants.DefaultSortType),
		Limit:    pagination.Limit,
		Offset:   pagination.Offset,
	}

	if raw := c.Query(constants.QueryParamUserID); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid userId filter").
				String("raw_id", raw).
				Log()
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(http.StatusBadRequest, "invalid userId", nil))
			return
		}
		filter.UserID = uint(userID)
	}

	videos, total, err := h.videos.List(ctx, filter, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "ListVideos")
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(http.StatusOK, videos, total, pagination, constants.MsgResourceFetched))
}

func (h *VideoHandler) Publish(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PublishVideo")

	var req dto.PublishVideoRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	video, err := h.videos.Publish(ctx, currentUserID(c), req)
	if err != nil {
		respondError(ctx, c, err, "PublishVideo")
		return
	}

	respond(c, http.StatusCreated, video, constants.MsgResourceCreated)
}

// Get returns one video, counting the view and recording watch history for signed-in viewers
func (h *VideoHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetVideo")

	id, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	video, err := h.videos.Get(ctx, id, currentUserID(c))
	if err != nil {
		respondError(ctx, c, err, "GetVideo")
		return
	}

	respond(c, http.StatusOK, video, constants.MsgResourceFetched)
}

func (h *VideoHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateVideo")

	id, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	var req dto.UpdateVideoRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	video, err := h.videos.Update(ctx, currentUserID(c), id, req)
	if err != nil {
		respondError(ctx, c, err, "UpdateVideo")
		return
	}

	respond(c, http.StatusOK, video, constants.MsgResourceUpdated)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteVideo")

	id, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	if err := h.videos.Delete(ctx, currentUserID(c), id); err != nil {
		respondError(ctx, c, err, "DeleteVideo")
		return
	}

	respond(c, http.StatusOK, gin.H{}, constants.MsgResourceDeleted)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "TogglePublish")

	id, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	video, err := h.videos.TogglePublish(ctx, currentUserID(c), id)
	if err != nil {
		respondError(ctx, c, err, "TogglePublish")
		return
	}

	respond(c, http.StatusOK, video, constants.MsgPublishToggled)
}
