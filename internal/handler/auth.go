package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CookieOptions controls how session cookies are written
type CookieOptions struct {
	Secure        bool
	Domain        string
	SameSite      http.SameSite
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// ParseSameSite maps "lax", "strict" and "none" to http.SameSite, defaulting to lax
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

type AuthHandler struct {
	auth    AuthService
	cookies CookieOptions
}

func NewAuthHandler(auth AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		respondError(ctx, c, err, "Register")
		return
	}

	respond(c, http.StatusCreated, user, constants.MsgUserRegistered)
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		respondError(ctx, c, err, "Login")
		return
	}

	h.setSessionCookies(c, res.AccessToken, res.RefreshToken)
	respond(c, http.StatusOK, res, constants.MsgUserLoggedIn)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	if err := h.auth.Logout(ctx, currentUserID(c)); err != nil {
		respondError(ctx, c, err, "Logout")
		return
	}

	h.clearSessionCookies(c)
	respond(c, http.StatusOK, gin.H{}, constants.MsgUserLoggedOut)
}

// RefreshToken rotates the session. The refresh token is read from its
// cookie first and from the JSON body otherwise.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	incoming, _ := c.Cookie(constants.CookieRefreshToken)
	if incoming == "" {
		var req dto.RefreshTokenRequest
		// An empty or non-JSON body leaves the token empty, which the service rejects
		_ = c.ShouldBindJSON(&req)
		incoming = req.RefreshToken
	}

	logger.DebugWithContext(ctx, "Refresh token request").
		Int("token_length", len(incoming)).
		Log()

	pair, err := h.auth.Refresh(ctx, incoming)
	if err != nil {
		respondError(ctx, c, err, "RefreshToken")
		return
	}

	h.setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, pair, constants.MsgTokenRefreshed)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ChangePassword")

	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	if err := h.auth.ChangePassword(ctx, currentUserID(c), req); err != nil {
		respondError(ctx, c, err, "ChangePassword")
		return
	}

	respond(c, http.StatusOK, gin.H{}, constants.MsgPasswordChanged)
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(constants.CookieAccessToken, access, int(h.cookies.AccessMaxAge.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(constants.CookieRefreshToken, refresh, int(h.cookies.RefreshMaxAge.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}
