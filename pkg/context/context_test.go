package ctxutil

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestNewContextWithRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/videos", nil)
	req.Header.Set("X-Request-ID", "req-1")
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	req.Header.Set("User-Agent", "curl/8")

	ctx := NewContextWithRequest(context.Background(), req, "handler", "GetAllVideos")

	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("request id = %q", got)
	}
	if got := GetClientIP(ctx); got != "10.0.0.1" {
		t.Errorf("client ip = %q", got)
	}
	if got := GetUserAgent(ctx); got != "curl/8" {
		t.Errorf("user agent = %q", got)
	}
	if GetModule(ctx) != "handler" || GetFunction(ctx) != "GetAllVideos" {
		t.Errorf("module/function = %q/%q", GetModule(ctx), GetFunction(ctx))
	}
	if GetStartTime(ctx).IsZero() {
		t.Error("expected start time to be set")
	}
}

func TestNewContextWithRequestKeepsMiddlewareValues(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "from-header")

	ctx := WithRequestID(context.Background(), "from-middleware")
	ctx = WithUserID(ctx, 7)
	ctx = NewContextWithRequest(ctx, req, "handler", "Fn")

	if got := GetRequestID(ctx); got != "from-middleware" {
		t.Errorf("request id = %q", got)
	}
	if id, ok := GetUserID(ctx); !ok || id != 7 {
		t.Errorf("user id = %d, %v", id, ok)
	}
}
