package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	return NewAuthService(users, NewCredentialStore(bcrypt.MinCost), newTestIssuer(t)), users
}

func registerAlice(t *testing.T, auth *AuthService) *dto.UserResponse {
	t.Helper()
	user, err := auth.Register(context.Background(), dto.RegisterRequest{
		Username: " Alice ",
		Email:    "A@X.com",
		FullName: "Alice Liddell",
		Password: "wonderland",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	auth, users := newTestAuth(t)
	user := registerAlice(t, auth)

	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("expected normalised identity, got %q / %q", user.Username, user.Email)
	}

	stored := users.stored(user.ID)
	if stored.Password == "wonderland" || stored.Password == "" {
		t.Error("password must be stored hashed")
	}
	if stored.RefreshToken != nil {
		t.Error("registration must not start a session")
	}
}

func TestRegisterRejects(t *testing.T) {
	auth, _ := newTestAuth(t)
	registerAlice(t, auth)

	tests := []struct {
		name string
		req  dto.RegisterRequest
		want error
	}{
		{"duplicate username", dto.RegisterRequest{Username: "alice", Email: "b@x.com", FullName: "B", Password: "pw1234"}, apperrors.ErrUserExists},
		{"duplicate email", dto.RegisterRequest{Username: "bob", Email: "a@x.com", FullName: "B", Password: "pw1234"}, apperrors.ErrUserExists},
		{"blank field", dto.RegisterRequest{Username: "bob", Email: "b@x.com", FullName: "   ", Password: "pw1234"}, apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	auth, users := newTestAuth(t)
	alice := registerAlice(t, auth)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"username only", dto.LoginRequest{Username: "alice", Password: "wonderland"}},
		{"email only", dto.LoginRequest{Email: "a@x.com", Password: "wonderland"}},
		{"both", dto.LoginRequest{Username: "alice", Email: "a@x.com", Password: "wonderland"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := auth.Login(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if res.AccessToken == "" || res.RefreshToken == "" {
				t.Fatal("expected both tokens")
			}
			if res.User.ID != alice.ID {
				t.Errorf("user id = %d", res.User.ID)
			}
			stored := users.stored(alice.ID)
			if stored.RefreshToken == nil || *stored.RefreshToken != res.RefreshToken {
				t.Error("stored refresh token must equal the issued one")
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	auth, _ := newTestAuth(t)
	registerAlice(t, auth)

	tests := []struct {
		name string
		req  dto.LoginRequest
		want error
		kind apperrors.Kind
	}{
		{"no identifier", dto.LoginRequest{Password: "wonderland"}, apperrors.ErrIdentifierRequired, apperrors.KindValidation},
		{"unknown user", dto.LoginRequest{Username: "bob", Password: "wonderland"}, apperrors.ErrUserNotFound, apperrors.KindNotFound},
		{"wrong password", dto.LoginRequest{Username: "alice", Password: "nope"}, apperrors.ErrInvalidCredentials, apperrors.KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Login() error = %v, want %v", err, tt.want)
			}
			if !apperrors.IsKind(err, tt.kind) {
				t.Errorf("kind = %v, want %v", apperrors.GetDomainError(err).Kind, tt.kind)
			}
		})
	}
}

func TestLoginRotatesAndInvalidatesPreviousSession(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()
	registerAlice(t, auth)

	first, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first.RefreshToken == second.RefreshToken {
		t.Fatal("second login must issue a new refresh token")
	}

	if _, err := auth.Refresh(ctx, first.RefreshToken); !errors.Is(err, apperrors.ErrRefreshTokenReused) {
		t.Errorf("refresh with superseded token: %v, want ErrRefreshTokenReused", err)
	}
	if _, err := auth.Refresh(ctx, second.RefreshToken); err != nil {
		t.Errorf("refresh with current token: %v", err)
	}
}

func TestRefreshRotatesOnEveryUse(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	alice := registerAlice(t, auth)

	login, _ := auth.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "wonderland"})

	pair, err := auth.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if pair.RefreshToken == login.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}
	if stored := users.stored(alice.ID); *stored.RefreshToken != pair.RefreshToken {
		t.Error("stored token must follow the rotation")
	}

	// Replaying the rotated-out token fails even though it has not expired
	if _, err := auth.Refresh(ctx, login.RefreshToken); !apperrors.IsKind(err, apperrors.KindAuth) {
		t.Errorf("replay: %v, want auth error", err)
	}
}

func TestRefreshRejects(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()
	registerAlice(t, auth)
	login, _ := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", apperrors.ErrRefreshTokenMissing},
		{"malformed", "garbage", apperrors.ErrMalformedToken},
		{"access token", login.AccessToken, apperrors.ErrTokenSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Refresh(ctx, tt.token); !errors.Is(err, tt.want) {
				t.Errorf("Refresh() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRefreshForDeletedUser(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	alice := registerAlice(t, auth)
	login, _ := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})

	users.mu.Lock()
	delete(users.byID, alice.ID)
	users.mu.Unlock()

	if _, err := auth.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("Refresh() error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestLogoutUnsetsRefreshToken(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	alice := registerAlice(t, auth)
	login, _ := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})

	if err := auth.Logout(ctx, alice.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if stored := users.stored(alice.ID); stored.RefreshToken != nil {
		t.Errorf("refresh token must be unset, got %q", *stored.RefreshToken)
	}

	if _, err := auth.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrRefreshTokenReused) {
		t.Errorf("refresh after logout: %v, want ErrRefreshTokenReused", err)
	}
}

func TestLoginPersistFailureKeepsOldSession(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	registerAlice(t, auth)
	first, _ := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})

	users.failRefreshWrite = errors.New("connection reset")
	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"}); !errors.Is(err, apperrors.ErrInternal) {
		t.Fatalf("Login() error = %v, want ErrInternal", err)
	}
	users.failRefreshWrite = nil

	if _, err := auth.Refresh(ctx, first.RefreshToken); err != nil {
		t.Errorf("previous session should remain usable: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	alice := registerAlice(t, auth)
	before := users.stored(alice.ID).Password

	err := auth.ChangePassword(ctx, alice.ID, dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "looking-glass"})
	if !errors.Is(err, apperrors.ErrIncorrectPassword) {
		t.Fatalf("ChangePassword(wrong old) = %v", err)
	}
	if users.stored(alice.ID).Password != before {
		t.Fatal("password must not change on failure")
	}

	if err := auth.ChangePassword(ctx, alice.ID, dto.ChangePasswordRequest{OldPassword: "wonderland", NewPassword: "looking-glass"}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("old password still works: %v", err)
	}
	if _, err := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "looking-glass"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	auth, users := newTestAuth(t)
	ctx := context.Background()
	alice := registerAlice(t, auth)
	login, _ := auth.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wonderland"})

	user, err := auth.Authenticate(ctx, login.AccessToken)
	if err != nil || user.ID != alice.ID {
		t.Fatalf("Authenticate() = %v, %v", user, err)
	}

	if _, err := auth.Authenticate(ctx, ""); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("empty token: %v", err)
	}
	if _, err := auth.Authenticate(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrTokenSignature) {
		t.Errorf("refresh token as access: %v", err)
	}

	users.mu.Lock()
	delete(users.byID, alice.ID)
	users.mu.Unlock()
	if _, err := auth.Authenticate(ctx, login.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("deleted user: %v", err)
	}
}
