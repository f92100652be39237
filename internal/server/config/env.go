package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/l1t48/Test-backend/internal/flagx"
)

// Environment variable names read by parseEnv.
const (
	EnvHTTPAddr           = "HTTP_ADDR"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvJWTSecret          = "JWT_SECRET"
	EnvJWTIssuer          = "JWT_ISSUER"
	EnvTokenTTL           = "TOKEN_TTL"
	EnvBcryptCost         = "BCRYPT_COST"
	EnvCookieName         = "COOKIE_NAME"
	EnvCookieDomain       = "COOKIE_DOMAIN"
	EnvCookieSecure       = "COOKIE_SECURE"
	EnvCookieSameSite     = "COOKIE_SAMESITE"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvLogLevel           = "LOG_LEVEL"
	EnvGinMode            = "GIN_MODE"
	EnvShutdownTimeout    = "SHUTDOWN_TIMEOUT"
)

// parseEnv loads the dotenv file (-env, default ".env") if it exists and then
// overlays every variable that is set. Variables already present in the
// process environment win over the file. Malformed numbers, booleans or
// durations are reported as errors rather than silently ignored.
func parseEnv(config *Config) error {
	if err := godotenv.Load(flagx.EnvFileFlag()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	if v, ok := os.LookupEnv(EnvHTTPAddr); ok {
		config.HTTPAddr = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvJWTSecret); ok {
		config.JWTSecret = v
	}
	if v, ok := os.LookupEnv(EnvJWTIssuer); ok && v != "" {
		config.JWTIssuer = v
	}
	if v, ok := os.LookupEnv(EnvCookieName); ok && v != "" {
		config.CookieName = v
	}
	if v, ok := os.LookupEnv(EnvCookieDomain); ok {
		config.CookieDomain = v
	}
	if v, ok := os.LookupEnv(EnvCookieSameSite); ok && v != "" {
		config.CookieSameSite = v
	}
	if v, ok := os.LookupEnv(EnvCORSAllowedOrigins); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvGinMode); ok && v != "" {
		config.GinMode = v
	}

	if v, ok := os.LookupEnv(EnvCookieSecure); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCookieSecure, err)
		}
		config.CookieSecure = b
	}
	if v, ok := os.LookupEnv(EnvBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		config.BcryptCost = n
	}
	if v, ok := os.LookupEnv(EnvTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		config.TokenTTL = d
	}
	if v, ok := os.LookupEnv(EnvShutdownTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShutdownTimeout, err)
		}
		config.ShutdownTimeout = d
	}

	return nil
}
