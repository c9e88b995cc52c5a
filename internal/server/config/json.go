package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
	"github.com/dmitrijs2005/bookshelf/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Durations use
// timex.Duration so both "1h" and integer nanoseconds are accepted.
//
// Example:
//
//	{
//	  "http_addr": ":8080",
//	  "database_dsn": "mongodb://localhost:27017",
//	  "token_format": "paseto",
//	  "secret_key": "0123456789abcdef0123456789abcdef",
//	  "token_validity": "1h",
//	  "login_identifier": "email"
//	}
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	Env                         string         `json:"env"`
	DatabaseDSN                 string         `json:"database_dsn"`
	MongoDatabase               string         `json:"mongo_database"`
	TokenFormat                 string         `json:"token_format"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"token_validity"`
	LoginIdentifier             string         `json:"login_identifier"`
	CatalogBaseURL              string         `json:"catalog_base_url"`
	CatalogAPIKey               string         `json:"catalog_api_key"`
	CatalogTimeout              timex.Duration `json:"catalog_timeout"`
	RequestTimeout              timex.Duration `json:"request_timeout"`
	ReadTimeout                 timex.Duration `json:"read_timeout"`
	WriteTimeout                timex.Duration `json:"write_timeout"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	TrustedOrigins              []string       `json:"trusted_origins"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flag. Keys missing from the file keep their current value.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JSONConfigPath(os.Args[1:])
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

	overlayString(&config.HTTPAddr, c.HTTPAddr)
	overlayString(&config.Env, c.Env)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.MongoDatabase, c.MongoDatabase)
	overlayString(&config.TokenFormat, c.TokenFormat)
	overlayString(&config.SecretKey, c.SecretKey)
	overlayString(&config.LoginIdentifier, c.LoginIdentifier)
	overlayString(&config.CatalogBaseURL, c.CatalogBaseURL)
	overlayString(&config.CatalogAPIKey, c.CatalogAPIKey)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CatalogTimeout.Duration != 0 {
		config.CatalogTimeout = c.CatalogTimeout.Duration
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ReadTimeout.Duration != 0 {
		config.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.WriteTimeout.Duration != 0 {
		config.WriteTimeout = c.WriteTimeout.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.TrustedOrigins != nil {
		config.TrustedOrigins = c.TrustedOrigins
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
