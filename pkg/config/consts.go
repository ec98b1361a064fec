package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "LENDSQR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "LENDSQR_APP_ENV"
	EnvPort            = "LENDSQR_APP_PORT"
	EnvUpstreamBaseURL = "LENDSQR_UPSTREAM_BASE_URL"
	EnvUpstreamMockURL = "LENDSQR_UPSTREAM_MOCK_URL"
	EnvRedisURL        = "LENDSQR_REDIS_URL"
	EnvJWTSecret       = "LENDSQR_JWT_SECRET"
	EnvJWTIssuer       = "LENDSQR_JWT_ISSUER"
	EnvJWTExpMins      = "LENDSQR_JWT_EXPIRATION_MINUTES"
)
