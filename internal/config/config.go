package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses the session durations
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Session durations are derived from day /
// minute counts so operators configure plain integers.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	SessionSecret  string        // secret used to sign the session cookie
	SessionTTL     time.Duration // session expiry window (default 7 days)
	SessionRefresh time.Duration // minimum age before a session is re-stamped (default 5 minutes)
	DataDir        string        // directory for the local session fallback files
	BcryptCost     int           // bcrypt cost for staff password hashing
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		SessionSecret:  must("SESSION_SECRET"),
		SessionTTL:     time.Duration(envInt("SESSION_TTL_DAYS", 7)) * 24 * time.Hour,
		SessionRefresh: time.Duration(envInt("SESSION_REFRESH_MIN", 5)) * time.Minute,
		DataDir:        envStr("DATA_DIR", "data"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}
}

// LoginLimitConfig controls the fixed-window rate limit applied to the
// login endpoint. When Redis is unavailable the limiter is a no-op.
type LoginLimitConfig struct {
	Enabled  bool
	Attempts int           // allowed attempts per window per client IP
	Window   time.Duration // window length
	Prefix   string        // Redis key namespace
}

// LoadLoginLimitConfig reads the limiter settings with sane defaults.
func LoadLoginLimitConfig() LoginLimitConfig {
	cfg := LoginLimitConfig{
		Enabled:  envBool("LOGIN_LIMIT_ENABLED", true),
		Attempts: envInt("LOGIN_LIMIT_ATTEMPTS", 10),
		Window:   envDur("LOGIN_LIMIT_WINDOW", time.Minute),
		Prefix:   envStr("LOGIN_LIMIT_PREFIX", "loginrl"),
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
