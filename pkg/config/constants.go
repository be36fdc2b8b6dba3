package config

import "time"

const (
	// EnvPrefix namespaces lookups as OMS_<NAME>; the bare name is the fallback.
	EnvPrefix = "OMS"

	AppEnvDev     = "dev"
	AppEnvStaging = "staging"
	AppEnvProd    = "prod"

	PasswordAlgorithmBcrypt   = "bcrypt"
	PasswordAlgorithmArgon2id = "argon2id"

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

const (
	EnvAppEnv            = "APP_ENV"
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvRedisURL          = "REDIS_URL"
	EnvSecretKey         = "SECRET_KEY"
	EnvAlgorithm         = "ALGORITHM"
	EnvAccessTokenExpire = "ACCESS_TOKEN_EXPIRE_MINUTES"
	EnvRefreshExpireDays = "REFRESH_TOKEN_EXPIRE_DAYS"
	EnvCookieSecure      = "COOKIE_SECURE"
	EnvPasswordAlgorithm = "PASSWORD_ALGORITHM"
	EnvCORSOrigins       = "CORS_ALLOWED_ORIGINS"
)
