package constants

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 100
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MaxTitleLength    = 200
	MaxDescLength     = 5000
	MaxContentLength  = 2000
	MaxURLLength      = 2048
)

// Default token lifetimes used when the environment does not set one
const (
	DefaultAccessTokenExpiry  = "1d"
	DefaultRefreshTokenExpiry = "10d"
)

// BcryptCost is the work factor for password hashing
const BcryptCost = 10
