package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)

// BearerPrefix precedes the access token in the Authorization header
const BearerPrefix = "Bearer"

// Common HTTP Error Messages
const (
	MsgUnauthorized  = "Unauthorized request"
	MsgForbidden     = "Access forbidden"
	MsgNotFound      = "Resource not found"
	MsgBadRequest    = "Invalid request"
	MsgValidation    = "Validation failed"
	MsgInternalError = "Internal server error"
)

// HTTP Success Messages
const (
	MsgHealthy = "OK"

	MsgUserRegistered   = "User registered successfully"
	MsgUserLoggedIn     = "User logged in successfully"
	MsgUserLoggedOut    = "User logged out successfully"
	MsgTokenRefreshed   = "Access token refreshed"
	MsgPasswordChanged  = "Password changed successfully"
	MsgUserFetched      = "User fetched successfully"
	MsgAccountUpdated   = "Account details updated successfully"
	MsgAvatarUpdated    = "Avatar image updated successfully"
	MsgCoverUpdated     = "Cover image updated successfully"
	MsgHistoryFetched   = "Watch history fetched successfully"
	MsgResourceCreated  = "Created successfully"
	MsgResourceFetched  = "Fetched successfully"
	MsgResourceUpdated  = "Updated successfully"
	MsgResourceDeleted  = "Deleted successfully"
	MsgToggledOn        = "Toggled on successfully"
	MsgToggledOff       = "Toggled off successfully"
	MsgPublishToggled   = "Publish status toggled successfully"
	MsgPlaylistModified = "Playlist updated successfully"
)
