package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	"github.com/Payphone-Digital/videotube/pkg/health"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return env
}

func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.GinKeyUserID, id)
		c.Next()
	}
}

type fakeAuth struct {
	registered  *dto.RegisterRequest
	loginErr    error
	loggedOut   uint
	refreshedBy string
}

func (f *fakeAuth) Register(_ context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	f.registered = &req
	return &dto.UserResponse{ID: 1, Username: req.Username, Email: req.Email}, nil
}

func (f *fakeAuth) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.LoginResponse{
		User:         dto.UserResponse{ID: 1, Username: req.Username},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

func (f *fakeAuth) Logout(_ context.Context, userID uint) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeAuth) Refresh(_ context.Context, token string) (*dto.TokenPair, error) {
	f.refreshedBy = token
	if token == "" {
		return nil, apperrors.ErrRefreshTokenMissing
	}
	return &dto.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (f *fakeAuth) ChangePassword(context.Context, uint, dto.ChangePasswordRequest) error {
	return apperrors.ErrIncorrectPassword
}

func newAuthRouter(auth AuthService) *gin.Engine {
	h := NewAuthHandler(auth, CookieOptions{
		Secure:        true,
		SameSite:      http.SameSiteLaxMode,
		AccessMaxAge:  time.Hour,
		RefreshMaxAge: 24 * time.Hour,
	})

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
	r.POST("/logout", asUser(7), h.Logout)
	r.POST("/change-password", asUser(7), h.ChangePassword)
	return r
}

func do(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(constants.HeaderContentType, "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterReturnsCreatedEnvelope(t *testing.T) {
	auth := &fakeAuth{}
	r := newAuthRouter(auth)

	rec := do(r, http.MethodPost, "/register", `{"username":"alice","email":"alice@x.com","fullName":"Alice","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	env := decode(t, rec)
	if !env.Success || env.StatusCode != http.StatusCreated || env.Message != constants.MsgUserRegistered {
		t.Errorf("unexpected envelope %+v", env)
	}
	if strings.Contains(string(env.Data), "password") {
		t.Errorf("response leaks password: %s", env.Data)
	}
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	auth := &fakeAuth{}
	r := newAuthRouter(auth)

	rec := do(r, http.MethodPost, "/register", `{"username":"alice","fullName":"Alice","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	env := decode(t, rec)
	if env.Success || len(env.Errors) == 0 {
		t.Errorf("expected field errors, got %+v", env)
	}
	if auth.registered != nil {
		t.Error("service must not run on invalid input")
	}
}

func TestLoginSetsSessionCookies(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})

	rec := do(r, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}

	for name, want := range map[string]string{
		constants.CookieAccessToken:  "access-token",
		constants.CookieRefreshToken: "refresh-token",
	} {
		c, found := cookies[name]
		if !found {
			t.Fatalf("cookie %s not set", name)
		}
		if c.Value != want || !c.HttpOnly || !c.Secure {
			t.Errorf("cookie %s = %+v", name, c)
		}
	}
}

func TestLoginFailureUsesErrorEnvelope(t *testing.T) {
	r := newAuthRouter(&fakeAuth{loginErr: apperrors.ErrInvalidCredentials})

	rec := do(r, http.MethodPost, "/login", `{"email":"alice@x.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}

	env := decode(t, rec)
	if env.Success || env.Message != apperrors.ErrInvalidCredentials.Message {
		t.Errorf("unexpected envelope %+v", env)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("failed login must not set cookies")
	}
}

func TestInternalErrorsHideCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	r := newAuthRouter(&fakeAuth{loginErr: apperrors.WrapError(apperrors.ErrInternal, cause)})

	rec := do(r, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("body leaks cause: %s", rec.Body.String())
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	auth := &fakeAuth{}
	r := newAuthRouter(auth)

	rec := do(r, http.MethodPost, "/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if auth.loggedOut != 7 {
		t.Errorf("logged out user = %d, want 7", auth.loggedOut)
	}

	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if (c.Name == constants.CookieAccessToken || c.Name == constants.CookieRefreshToken) && c.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 2 {
		t.Errorf("expected both cookies cleared, got %d", cleared)
	}
}

func TestRefreshTokenSources(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		cookie *http.Cookie
		want   string
		status int
	}{
		{"cookie", "", &http.Cookie{Name: constants.CookieRefreshToken, Value: "from-cookie"}, "from-cookie", http.StatusOK},
		{"body", `{"refreshToken":"from-body"}`, nil, "from-body", http.StatusOK},
		{"cookie wins", `{"refreshToken":"from-body"}`, &http.Cookie{Name: constants.CookieRefreshToken, Value: "from-cookie"}, "from-cookie", http.StatusOK},
		{"missing", "", nil, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{}
			r := newAuthRouter(auth)

			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}
			rec := do(r, http.MethodPost, "/refresh", tt.body, cookies...)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if auth.refreshedBy != tt.want {
				t.Errorf("refreshed with %q, want %q", auth.refreshedBy, tt.want)
			}
		})
	}
}

func TestChangePasswordMapsAuthError(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})

	rec := do(r, http.MethodPost, "/change-password", `{"oldPassword":"nope","newPassword":"secret2"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode(t, rec); env.Message != apperrors.ErrIncorrectPassword.Message {
		t.Errorf("message = %q", env.Message)
	}
}

type fakeToggles struct {
	active map[string]bool
	actor  uint
}

func (f *fakeToggles) ToggleLike(_ context.Context, actorID uint, kind model.TargetKind, targetID uint) (*dto.ToggleResponse, error) {
	if targetID == 404 {
		return nil, apperrors.ErrVideoNotFound
	}
	f.actor = actorID
	key := string(kind)
	f.active[key] = !f.active[key]
	return &dto.ToggleResponse{Active: f.active[key]}, nil
}

func (f *fakeToggles) ToggleSubscription(_ context.Context, subscriberID, channelID uint) (*dto.ToggleResponse, error) {
	if subscriberID == channelID {
		return nil, apperrors.ErrSelfSubscription
	}
	return &dto.ToggleResponse{Active: true}, nil
}

func (f *fakeToggles) LikedVideos(context.Context, uint) ([]dto.VideoResponse, error) {
	return []dto.VideoResponse{}, nil
}

func (f *fakeToggles) Subscribers(context.Context, uint) ([]dto.SubscriptionResponse, error) {
	return nil, nil
}

func (f *fakeToggles) Subscriptions(context.Context, uint) ([]dto.SubscriptionResponse, error) {
	return nil, nil
}

func TestToggleLikeStatusCodes(t *testing.T) {
	toggles := &fakeToggles{active: map[string]bool{}}
	h := NewToggleHandler(toggles)

	r := gin.New()
	r.Use(asUser(3))
	r.POST("/likes/toggle/v/:videoId", h.ToggleVideoLike)
	r.POST("/subscriptions/c/:channelId", h.ToggleSubscription)

	first := do(r, http.MethodPost, "/likes/toggle/v/10", "")
	if first.Code != http.StatusCreated {
		t.Fatalf("first toggle status = %d", first.Code)
	}
	if !strings.Contains(string(decode(t, first).Data), `"active":true`) {
		t.Errorf("first toggle body %s", first.Body.String())
	}

	second := do(r, http.MethodPost, "/likes/toggle/v/10", "")
	if second.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d", second.Code)
	}
	if toggles.actor != 3 {
		t.Errorf("actor = %d, want 3", toggles.actor)
	}

	for path, want := range map[string]int{
		"/likes/toggle/v/abc": http.StatusBadRequest,
		"/likes/toggle/v/0":   http.StatusBadRequest,
		"/likes/toggle/v/404": http.StatusNotFound,
		"/subscriptions/c/3":  http.StatusBadRequest,
		"/subscriptions/c/9":  http.StatusCreated,
	} {
		if rec := do(r, http.MethodPost, path, ""); rec.Code != want {
			t.Errorf("%s status = %d, want %d", path, rec.Code, want)
		}
	}
}

func TestHealthReportsCriticalFailure(t *testing.T) {
	monitor := health.NewMonitor(time.Minute, zap.NewNop())
	monitor.Register("database", true, func(context.Context) error { return errors.New("down") })
	monitor.Register("redis", false, func(context.Context) error { return health.ErrDisabled })

	h := NewHealthHandler(monitor)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/healthcheck", h.Liveness)

	rec := do(r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}

	live := do(r, http.MethodGet, "/healthcheck", "")
	if live.Code != http.StatusOK || decode(t, live).Message != constants.MsgHealthy {
		t.Errorf("healthcheck = %d %s", live.Code, live.Body.String())
	}
}
