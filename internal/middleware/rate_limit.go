package middleware

import (
	"math"
	"strconv"

	"github.com/Payphone-Digital/videotube/internal/constants"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/Payphone-Digital/videotube/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit limits requests per client IP within scope. A limiter error lets
// the request through; the limiter is not allowed to take the API down.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		decision, err := limiter.Allow(c.Request.Context(), scope+":"+ip)
		if err != nil {
			logger.GetLogger().Warn("Rate limiter unavailable, allowing request",
				zap.String("scope", scope),
				zap.String("client_ip", ip),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("scope", scope),
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("limit", decision.Limit),
				zap.Int("retry_after_seconds", retryAfter),
			)

			status := apperrors.ToHTTPStatus(apperrors.ErrRateLimited)
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(status,
				constants.BuildErrorResponse(status, apperrors.GetErrorMessage(apperrors.ErrRateLimited), nil))
			return
		}

		c.Next()
	}
}
