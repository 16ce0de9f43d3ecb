package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "EMPRENDIA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv    = "EMPRENDIA_APP_ENV"
	EnvPort      = "EMPRENDIA_APP_PORT"
	EnvJWTSecret = "EMPRENDIA_JWT_SECRET"
	EnvJWTIssuer = "EMPRENDIA_JWT_ISSUER"
	EnvDataDir   = "EMPRENDIA_STORE_DATA_DIR"
)
