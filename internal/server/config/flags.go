package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN, postgres:// or mongodb://
//	-n string   mongo database name
//	-s string   token secret key
//	-f string   token format, jwt or paseto
//	-t int      access token validity, minutes
//	-l string   login identifier, username or email
//	-b string   book catalog base URL
//	-k string   book catalog API key
//	-m string   environment, dev or prod
//	-o string   comma-separated CORS trusted origins
//
// Duration flags are accepted as integers in minutes and only applied when
// present. Parse errors panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-s", "-f", "-t", "-l", "-b", "-k", "-m", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "mongo database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenFormat, "f", config.TokenFormat, "token format (jwt|paseto)")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.LoginIdentifier, "l", config.LoginIdentifier, "login identifier (username|email)")
	fs.StringVar(&config.CatalogBaseURL, "b", config.CatalogBaseURL, "book catalog base URL")
	fs.StringVar(&config.CatalogAPIKey, "k", config.CatalogAPIKey, "book catalog API key")
	fs.StringVar(&config.Env, "m", config.Env, "environment (dev|prod)")

	origins := flagx.StringList(config.TrustedOrigins)
	fs.Var(&origins, "o", "comma-separated CORS trusted origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t applies only when given on the command line
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
	config.TrustedOrigins = []string(origins)
}
