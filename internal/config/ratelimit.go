package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig controls the Redis fixed-window rate limiter applied
// to write endpoints (auth and booking creation).
type RateLimitConfig struct {
	Enabled bool          // master switch
	Limit   int           // max requests per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads rate-limit settings from the environment,
// falling back to 30 requests per 10 seconds.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_MAX", 30),
		Window:  envDur("RATE_LIMIT_WINDOW", 10*time.Second),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}
