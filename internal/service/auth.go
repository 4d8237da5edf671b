package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/Payphone-Digital/videotube/internal/dto"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/gorm"
)

// AuthService is the session controller: register, login, logout, refresh
// and password change.
type AuthService struct {
	users       UserStore
	credentials *CredentialStore
	tokens      *TokenIssuer
}

func NewAuthService(users UserStore, credentials *CredentialStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "all fields are required")
	}

	logger.InfoWithContext(ctx, "Registering user").
		String("username", username).
		String("email", email).
		Log()

	existing, err := s.users.GetByIdentifier(ctx, username, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, nil)
	}
	if existing != nil {
		logger.WarnWithContext(ctx, "Username or email already taken").
			String("username", username).
			Log()
		return nil, apperrors.ErrUserExists
	}

	user := &model.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     strings.TrimSpace(req.AvatarURL),
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
	}
	if _, err := s.credentials.ApplyPassword(user, req.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, storeError(err, nil)
	}

	logger.LogAuth(user.ID, "register", true)

	res := dto.NewUserResponse(user)
	return &res, nil
}

// Login authenticates by username OR email and starts a new session chain.
// The previous refresh token of the user stops working.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperrors.ErrIdentifierRequired
	}

	user, err := s.users.GetByIdentifier(ctx, username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithContext(ctx, "Login for unknown user").
				String("username", username).
				String("email", email).
				Log()
		}
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}

	ok, err := s.credentials.Verify(req.Password, user.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Stored password hash is unusable").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		logger.LogAuth(user.ID, "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID, "login", true)

	return &dto.LoginResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout unsets the stored refresh token so no refresh token of the chain can match it
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")

	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}

	logger.LogAuth(userID, "logout", true)
	return nil
}

// Refresh rotates the session. A token that verifies but is not the one
// currently stored on the user has been rotated out and is rejected.
func (s *AuthService) Refresh(ctx context.Context, incoming string) (*dto.TokenPair, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Refresh")

	if incoming == "" {
		return nil, apperrors.ErrRefreshTokenMissing
	}

	claims, err := s.tokens.VerifyRefresh(incoming)
	if err != nil {
		logger.WarnWithContext(ctx, "Refresh token rejected").
			Int("token_length", len(incoming)).
			Err(err).
			Log()
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrInvalidRefreshToken)
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(incoming)) != 1 {
		logger.WarnWithContext(ctx, "Refresh token does not match the active session").
			Uint("user_id", user.ID).
			Bool("has_active_session", user.HasRefreshToken()).
			Log()
		logger.LogAuth(user.ID, "refresh", false)
		return nil, apperrors.ErrRefreshTokenReused
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(user.ID, "refresh", true)
	return pair, nil
}

// ChangePassword requires the old password and re-validates the record before writing
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req dto.ChangePasswordRequest) error {
	ctx = ctxutil.WithFunction(ctx, "service", "ChangePassword")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}

	ok, err := s.credentials.Verify(req.OldPassword, user.Password)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		logger.LogAuth(user.ID, "change_password", false)
		return apperrors.ErrIncorrectPassword
	}

	changed, err := s.credentials.ApplyPassword(user, req.NewPassword)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := user.Validate(); err != nil {
		return apperrors.WrapError(apperrors.ErrInvalidInput, err)
	}

	// Only the password column is written so a concurrent rotation is not overwritten
	if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"password": user.Password}); err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}

	logger.LogAuth(user.ID, "change_password", true)
	return nil
}

// Authenticate resolves an access token to the user it was issued for
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Authenticate")

	if accessToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeError(err, apperrors.ErrInvalidToken)
	}
	return user, nil
}

// issueSession mints a new pair and overwrites the stored refresh token.
// The write is not transactional with issuance: if it fails the previous
// token stays valid and the new pair is discarded.
func (s *AuthService) issueSession(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		logger.ErrorWithContext(ctx, "Failed to persist refresh token").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	user.RefreshToken = &refresh

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
