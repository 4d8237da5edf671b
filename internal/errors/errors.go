package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error and decides how it surfaces at the transport boundary
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindConfig
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfig:
		return "config"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// DomainError represents a domain-specific error with a kind, code and message
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on code so wrapped copies of a predefined error still compare equal
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind Kind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Kind:    domainErr.Kind,
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMessage copies a domain error with a more specific message
func WithMessage(domainErr *DomainError, message string) *DomainError {
	return &DomainError{
		Kind:    domainErr.Kind,
		Code:    domainErr.Code,
		Message: message,
		Err:     domainErr.Err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError(KindNotFound, "USER_NOT_FOUND", "user does not exist")
	ErrUserExists         = NewDomainError(KindConflict, "USER_EXISTS", "user with email or username already exists")
	ErrInvalidCredentials = NewDomainError(KindAuth, "INVALID_CREDENTIALS", "invalid user credentials")
	ErrIncorrectPassword  = NewDomainError(KindAuth, "INCORRECT_PASSWORD", "invalid old password")
	ErrIdentifierRequired = NewDomainError(KindValidation, "IDENTIFIER_REQUIRED", "username or email is required")

	// Authentication errors
	ErrUnauthorized        = NewDomainError(KindAuth, "UNAUTHORIZED", "unauthorized request")
	ErrInvalidToken        = NewDomainError(KindAuth, "INVALID_TOKEN", "invalid token")
	ErrTokenExpired        = NewDomainError(KindAuth, "TOKEN_EXPIRED", "token has expired")
	ErrTokenSignature      = NewDomainError(KindAuth, "TOKEN_SIGNATURE_INVALID", "token signature is invalid")
	ErrMalformedToken      = NewDomainError(KindValidation, "TOKEN_MALFORMED", "token is malformed")
	ErrRefreshTokenMissing = NewDomainError(KindAuth, "REFRESH_TOKEN_MISSING", "refresh token is required")
	ErrRefreshTokenReused  = NewDomainError(KindAuth, "REFRESH_TOKEN_REUSED", "refresh token is expired or used")
	ErrInvalidRefreshToken = NewDomainError(KindAuth, "INVALID_REFRESH_TOKEN", "invalid refresh token")

	// Rate limiting errors
	ErrRateLimited = NewDomainError(KindRateLimited, "RATE_LIMITED", "Too many requests")

	// Resource errors
	ErrVideoNotFound    = NewDomainError(KindNotFound, "VIDEO_NOT_FOUND", "video not found")
	ErrCommentNotFound  = NewDomainError(KindNotFound, "COMMENT_NOT_FOUND", "comment not found")
	ErrTweetNotFound    = NewDomainError(KindNotFound, "TWEET_NOT_FOUND", "tweet not found")
	ErrPlaylistNotFound = NewDomainError(KindNotFound, "PLAYLIST_NOT_FOUND", "playlist not found")
	ErrChannelNotFound  = NewDomainError(KindNotFound, "CHANNEL_NOT_FOUND", "channel not found")
	ErrForbidden        = NewDomainError(KindForbidden, "FORBIDDEN", "you are not allowed to modify this resource")
	ErrSelfSubscription = NewDomainError(KindValidation, "SELF_SUBSCRIPTION", "you cannot subscribe to your own channel")

	// Validation errors
	ErrInvalidInput      = NewDomainError(KindValidation, "INVALID_INPUT", "invalid input")
	ErrInvalidTargetKind = NewDomainError(KindValidation, "INVALID_TARGET_KIND", "invalid toggle target kind")
	ErrInvalidID         = NewDomainError(KindValidation, "INVALID_ID", "invalid id")

	// System errors
	ErrConfig             = NewDomainError(KindConfig, "CONFIG_ERROR", "server is misconfigured")
	ErrInternal           = NewDomainError(KindInternal, "INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError(KindInternal, "SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsKind reports whether err is a domain error of the given kind
func IsKind(err error, kind Kind) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Kind == kind
	}
	return false
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return kindToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func kindToHTTPStatus(err *DomainError) int {
	switch err.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	}

	if err.Code == ErrServiceUnavailable.Code {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
