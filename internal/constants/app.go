package constants

// Application Information
const (
	AppName    = "videotube"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8000"
	DefaultEnvironment = EnvDevelopment
)

// Redis Key Prefixes
const (
	RedisKeyPrefix    = "videotube:"
	RedisKeyRateLimit = RedisKeyPrefix + "ratelimit:"
)

// Session artifact names shared by cookies and JSON bodies
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)
