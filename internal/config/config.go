package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Token lifetimes are expressed in seconds so the
// auth layer can work with plain time.Duration math.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	JWTSecret        string // secret used to sign access-token JWTs
	AccessTTLSec     int    // access token time-to-live in seconds
	RefreshTTLSec    int    // refresh token time-to-live in seconds
	SessionMaxAgeSec int    // session carrier max age in seconds
	BcryptCost       int    // bcrypt cost for password hashing
	CookieName       string // name of the session cookie
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Token lifetimes fall
// back to 15 minutes / 7 days / 30 days when unset.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLSec:     intOr("ACCESS_TOKEN_TTL_SECONDS", 900),
		RefreshTTLSec:    intOr("REFRESH_TOKEN_TTL_SECONDS", 7*24*3600),
		SessionMaxAgeSec: intOr("SESSION_MAX_AGE_SECONDS", 30*24*3600),
		BcryptCost:       intOr("BCRYPT_COST", 10),
		CookieName:       getenv("SESSION_COOKIE_NAME", "portfolio_session"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr converts the environment variable into an integer, falling back to
// def when the variable is unset.  A present but malformed value is fatal so
// misconfiguration never silently shortens or extends token lifetimes.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
