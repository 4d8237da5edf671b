package handler

import (
	"net/http"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListComments")

	videoID, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	pagination := constants.ParsePaginationParams(c)
	comments, total, err := h.comments.List(ctx, videoID, pagination.Limit, pagination.Offset)
	if err != nil {
		respondError(ctx, c, err, "ListComments")
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(http.StatusOK, comments, total, pagination, constants.MsgResourceFetched))
}

func (h *CommentHandler) Add(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddComment")

	videoID, valid := parseID(ctx, c, "videoId")
	if !valid {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	comment, err := h.comments.Add(ctx, currentUserID(c), videoID, req.Content)
	if err != nil {
		respondError(ctx, c, err, "AddComment")
		return
	}

	respond(c, http.StatusCreated, comment, constants.MsgResourceCreated)
}

func (h *CommentHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateComment")

	commentID, valid := parseID(ctx, c, "commentId")
	if !valid {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	comment, err := h.comments.Update(ctx, currentUserID(c), commentID, req.Content)
	if err != nil {
		respondError(ctx, c, err, "UpdateComment")
		return
	}

	respond(c, http.StatusOK, comment, constants.MsgResourceUpdated)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteComment")

	commentID, valid := parseID(ctx, c, "commentId")
	if !valid {
		return
	}

	if err := h.comments.Delete(ctx, currentUserID(c), commentID); err != nil {
		respondError(ctx, c, err, "DeleteComment")
		return
	}

	respond(c, http.StatusOK, gin.H{}, constants.MsgResourceDeleted)
}
