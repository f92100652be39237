package config

import (
	"encoding/json"
	"os"

	"github.com/l1t48/Test-backend/internal/flagx"
	"github.com/l1t48/Test-backend/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "3h" strings and integer nanoseconds. Fields left
// out of the file keep the values already present in Config.
type JsonConfig struct {
	HTTPAddr           string          `json:"http_addr"`
	DatabaseDSN        string          `json:"database_dsn"`
	JWTSecret          string          `json:"jwt_secret"`
	JWTIssuer          string          `json:"jwt_issuer"`
	TokenTTL           *timex.Duration `json:"token_ttl"`
	BcryptCost         int             `json:"bcrypt_cost"`
	CookieName         string          `json:"cookie_name"`
	CookieDomain       string          `json:"cookie_domain"`
	CookieSecure       *bool           `json:"cookie_secure"`
	CookieSameSite     string          `json:"cookie_samesite"`
	CORSAllowedOrigins []string        `json:"cors_allowed_origins"`
	LogLevel           string          `json:"log_level"`
	GinMode            string          `json:"gin_mode"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c / -config into config. Without the
// flag nothing happens. An unreadable or malformed file panics, the same
// way a bad flag does.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.JWTIssuer, c.JWTIssuer)
	setString(&config.CookieName, c.CookieName)
	setString(&config.CookieDomain, c.CookieDomain)
	setString(&config.CookieSameSite, c.CookieSameSite)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.GinMode, c.GinMode)

	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
