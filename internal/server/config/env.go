package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays settings from the environment. Keys missing from the
// process environment are looked up in envFile (dotenv syntax); a missing
// file is not an error. Real environment variables win over the file.
func parseEnv(config *Config, envFile string) {
	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	applyEnv(config, lookup)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("HTTP_ADDR", &config.HTTPAddr)
	str("DATABASE_URL", &config.DatabaseDSN)
	str("SESSION_SECRET", &config.SessionSecret)
	str("SESSION_ENCRYPTION_KEY", &config.SessionEncryptionKey)
	str("TOKEN_SECRET", &config.TokenSecret)
	duration("BEARER_VALIDITY", &config.BearerValidity)
	duration("SESSION_MAX_AGE", &config.SessionMaxAge)
	boolean("COOKIE_SECURE", &config.CookieSecure)
	boolean("STRICT_BEARER", &config.StrictBearer)
	str("LOG_FORMAT", &config.LogFormat)
	str("LOG_LEVEL", &config.LogLevel)
	duration("READ_TIMEOUT", &config.ReadTimeout)
	duration("WRITE_TIMEOUT", &config.WriteTimeout)
	str("GOOGLE_CLIENT_ID", &config.GoogleClientID)
	str("GOOGLE_CLIENT_SECRET", &config.GoogleClientSecret)
	str("GOOGLE_REDIRECT_URL", &config.GoogleRedirectURL)
	boolean("METRICS_ENABLED", &config.MetricsEnabled)
	str("METRICS_ADDR", &config.MetricsAddr)
}
