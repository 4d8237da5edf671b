package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Payphone-Digital/videotube/internal/constants"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves an access token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type JWTMiddleware struct {
	auth Authenticator
}

func NewJWTMiddleware(auth Authenticator) *JWTMiddleware {
	return &JWTMiddleware{auth: auth}
}

// RequireAuth validates the access token and sets the caller in the gin and request contexts
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithFunction(c.Request.Context(), "middleware", "RequireAuth")

		token := AccessToken(c)
		if token == "" {
			logger.WarnWithContext(ctx, "Missing access token").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Log()
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		user, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			logger.WarnWithContext(ctx, "Access token rejected").
				String("path", c.Request.URL.Path).
				Int("token_length", len(token)).
				Err(err).
				Log()
			abortWithError(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// AccessToken reads the access token from its cookie, then from the Authorization header
func AccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != constants.BearerPrefix {
		return ""
	}
	return strings.TrimSpace(token)
}

func setUser(c *gin.Context, user *model.User) {
	c.Set(constants.GinKeyUserID, user.ID)
	c.Set(constants.GinKeyEmail, user.Email)
	c.Set(constants.GinKeyUsername, user.Username)
	c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user.ID))
}

func abortWithError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, constants.BuildErrorResponse(status, constants.MsgInternalError, nil))
		return
	}
	c.AbortWithStatusJSON(status, constants.BuildErrorResponse(status, apperrors.GetErrorMessage(err), nil))
}
