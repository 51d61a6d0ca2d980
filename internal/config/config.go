// Package config loads application configuration from environment variables.
// Core logic never reads ambient process state; everything it needs is
// carried on this struct and injected at startup.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; required variables are enforced by must() and a
// missing value halts startup.
type Config struct {
	Env            string   // application environment (dev/test/prod)
	Port           string   // HTTP port to listen on
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign JWTs
	AccessTTLMin   int      // access token time-to-live in minutes
	RefreshTTLDays int      // refresh token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	SiteName       string   // public site name, echoed in responses where needed
	APIBaseURL     string   // absolute base URL the API is served under
	UploadDir      string   // directory poster uploads are written to
	MaxUploadBytes int64    // upload size ceiling in bytes
	AllowedImage   []string // accepted poster file extensions
}

// Load reads configuration from the environment. Settings with sensible
// defaults (site metadata, upload policy) fall back instead of failing.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		SiteName:       getenv("SITE_NAME", "MoviesMod"),
		APIBaseURL:     getenv("API_BASE_URL", "http://localhost:5000"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(envInt("MAX_FILE_SIZE", 10<<20)),
		AllowedImage:   splitList(getenv("ALLOWED_IMAGE_TYPES", "jpeg,jpg,png,gif,webp")),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
