package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/videotube/internal/constants"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/Payphone-Digital/videotube/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondError renders err in the envelope. Internal failures are logged
// with their cause and answered with a generic message.
func respondError(ctx context.Context, c *gin.Context, err error, action string) {
	status := apperrors.ToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, action+" failed").
			Int("http_status", status).
			Err(err).
			Log()
		message := constants.MsgInternalError
		if status == http.StatusServiceUnavailable {
			message = apperrors.GetErrorMessage(err)
		}
		c.JSON(status, constants.BuildErrorResponse(status, message, nil))
		return
	}

	logger.WarnWithContext(ctx, action+" rejected").
		Int("http_status", status).
		Err(err).
		Log()
	c.JSON(status, constants.BuildErrorResponse(status, apperrors.GetErrorMessage(err), nil))
}

// bindJSON binds the body into req and answers 400 with per-field messages on failure
func bindJSON(ctx context.Context, c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.WarnWithContext(ctx, "Request body rejected").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(
			http.StatusBadRequest, constants.MsgValidation, validation.FormatErrors(err)))
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter
func parseID(ctx context.Context, c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		logger.WarnWithContext(ctx, "Invalid id parameter").
			String("param", name).
			String("raw_id", raw).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(
			http.StatusBadRequest, "invalid "+name, nil))
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated caller, or 0 for anonymous requests
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.GinKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, constants.BuildSuccessResponse(status, data, message))
}
