package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "BOOKSHELF_"

// loadDotEnv is a seam for godotenv.Load; a missing .env file is not an error.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays Config with BOOKSHELF_* environment variables after
// loading an optional .env file from the working directory. Variables that
// are unset leave the current value alone. Durations use time.ParseDuration
// syntax ("90s", "1h"); an unparsable duration panics like the other loaders.
func parseEnv(config *Config) {
	loadDotEnv()

	setString(&config.HTTPAddr, "HTTP_ADDR")
	setString(&config.Env, "ENV")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.MongoDatabase, "MONGO_DATABASE")
	setString(&config.TokenFormat, "TOKEN_FORMAT")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.AccessTokenValidityDuration, "TOKEN_VALIDITY")
	setString(&config.LoginIdentifier, "LOGIN_IDENTIFIER")
	setString(&config.CatalogBaseURL, "CATALOG_BASE_URL")
	setString(&config.CatalogAPIKey, "CATALOG_API_KEY")
	setDuration(&config.CatalogTimeout, "CATALOG_TIMEOUT")
	setDuration(&config.RequestTimeout, "REQUEST_TIMEOUT")
	setDuration(&config.ReadTimeout, "READ_TIMEOUT")
	setDuration(&config.WriteTimeout, "WRITE_TIMEOUT")
	setDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT")

	if v, ok := os.LookupEnv(envPrefix + "TRUSTED_ORIGINS"); ok {
		config.TrustedOrigins = flagx.SplitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
