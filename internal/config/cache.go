package config

import "time"

// CacheConfig defines settings for the response cache middleware used on
// the public session listing.  When Enabled is false or no Redis client
// is available, caching is disabled.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration // lifetime of cache entries
	Prefix       string        // Redis key namespace
	MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads cache settings from the environment, defaulting
// to a 30 second TTL and a 1 MiB body cap.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
