package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"15m", 15 * time.Minute, false},
		{"240h", 240 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"10d", 240 * time.Hour, false},
		{" 2d ", 48 * time.Hour, false},
		{"xd", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")

	_, err := LoadConfig()
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoadConfigReadsTokenSettings(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "1d")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "10d")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Token.AccessSecret != "access" || cfg.Token.RefreshSecret != "refresh" {
		t.Errorf("unexpected secrets: %+v", cfg.Token)
	}
	if cfg.Token.AccessExpiry != 24*time.Hour {
		t.Errorf("access expiry = %v", cfg.Token.AccessExpiry)
	}
	if cfg.Token.RefreshExpiry != 240*time.Hour {
		t.Errorf("refresh expiry = %v", cfg.Token.RefreshExpiry)
	}
	if cfg.Cookie.Secure {
		t.Error("expected insecure cookies when COOKIE_SECURE=false")
	}
}

func TestLoadConfigTrustsNoProxiesByDefault(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App.TrustedProxies != nil {
		t.Errorf("trusted proxies = %v, want none", cfg.App.TrustedProxies)
	}
	if !reflect.DeepEqual(cfg.App.CORSOrigins, []string{"*"}) {
		t.Errorf("cors origins = %v", cfg.App.CORSOrigins)
	}
}

func TestLoadConfigReadsLists(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10,")
	t.Setenv("CORS_ORIGIN", "https://app.example.com,https://admin.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if want := []string{"10.0.0.0/8", "192.168.1.10"}; !reflect.DeepEqual(cfg.App.TrustedProxies, want) {
		t.Errorf("trusted proxies = %v, want %v", cfg.App.TrustedProxies, want)
	}
	if want := []string{"https://app.example.com", "https://admin.example.com"}; !reflect.DeepEqual(cfg.App.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.App.CORSOrigins, want)
	}
}

func TestLoadConfigRejectsBadProxy(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("TRUSTED_PROXIES", "load-balancer")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a non-IP proxy entry")
	}
}
