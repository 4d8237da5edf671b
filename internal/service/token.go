package service

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig is built once at startup from config.TokenConfig
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
}

type AccessClaims struct {
	UserID   uint   `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Outcome is the tagged result of verifying a token
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeExpired
	OutcomeInvalidSignature
	OutcomeMalformed
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeExpired:
		return "expired"
	case OutcomeInvalidSignature:
		return "invalid_signature"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "invalid"
	}
}

// Err returns the domain error for a failed outcome, nil for OutcomeOK
func (o Outcome) Err() error {
	switch o {
	case OutcomeOK:
		return nil
	case OutcomeExpired:
		return apperrors.ErrTokenExpired
	case OutcomeInvalidSignature:
		return apperrors.ErrTokenSignature
	case OutcomeMalformed:
		return apperrors.ErrMalformedToken
	default:
		return apperrors.ErrInvalidToken
	}
}

// TokenIssuer signs access and refresh tokens with HS256
type TokenIssuer struct {
	config TokenConfig
	now    func() time.Time
}

func NewTokenIssuer(config TokenConfig) (*TokenIssuer, error) {
	if config.AccessSecret == "" || config.RefreshSecret == "" {
		return nil, apperrors.WithMessage(apperrors.ErrConfig, "access and refresh token secrets must be set")
	}
	if config.AccessExpiry <= 0 || config.RefreshExpiry <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrConfig, "token expiry must be positive")
	}
	return &TokenIssuer{config: config, now: time.Now}, nil
}

func (i *TokenIssuer) registered(subject uint, expiry time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   fmt.Sprintf("%d", subject),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
}

// IssueAccess mints a short-lived token carrying the user's public identity
func (i *TokenIssuer) IssueAccess(user *model.User) (string, error) {
	if i.config.AccessSecret == "" {
		return "", apperrors.ErrConfig
	}
	claims := AccessClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		RegisteredClaims: i.registered(user.ID, i.config.AccessExpiry),
	}
	return i.sign(claims, i.config.AccessSecret)
}

// IssueRefresh mints a long-lived token carrying only the user id
func (i *TokenIssuer) IssueRefresh(userID uint) (string, error) {
	if i.config.RefreshSecret == "" {
		return "", apperrors.ErrConfig
	}
	claims := RefreshClaims{
		UserID:           userID,
		RegisteredClaims: i.registered(userID, i.config.RefreshExpiry),
	}
	return i.sign(claims, i.config.RefreshSecret)
}

func (i *TokenIssuer) sign(claims jwt.Claims, secret string) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

// Verify parses tokenString into claims and classifies the result.
// The checks run in jwt order: structure, signature, then expiry.
func (i *TokenIssuer) Verify(tokenString, secret string, claims jwt.Claims) Outcome {
	if tokenString == "" {
		return OutcomeMalformed
	}
	if secret == "" {
		return OutcomeInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	switch {
	case err == nil && token.Valid:
		return OutcomeOK
	case errors.Is(err, jwt.ErrTokenMalformed):
		return OutcomeMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return OutcomeInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return OutcomeExpired
	default:
		return OutcomeInvalid
	}
}

// VerifyAccess checks an access token and returns its claims
func (i *TokenIssuer) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.Verify(tokenString, i.config.AccessSecret, claims).Err(); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh checks a refresh token and returns its claims
func (i *TokenIssuer) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.Verify(tokenString, i.config.RefreshSecret, claims).Err(); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	return claims, nil
}

// AccessExpiry and RefreshExpiry size the session cookies
func (i *TokenIssuer) AccessExpiry() time.Duration  { return i.config.AccessExpiry }
func (i *TokenIssuer) RefreshExpiry() time.Duration { return i.config.RefreshExpiry }
