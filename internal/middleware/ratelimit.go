package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tired-surtr/stretch-backend/internal/config"
)

// RateLimit returns a Redis-backed fixed-window rate limiter keyed by
// client IP, user and route.  When the limiter is disabled, Redis is
// unavailable, or a Redis call fails mid-request, requests pass through
// unlimited: availability wins over strict limiting.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateKey(cfg.Prefix, c)

			// INCR + EXPIRE-on-first-hit implements the fixed window.
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry := int(cfg.Window.Seconds())
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = int(ttl.Seconds()) + 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}

// rateKey builds the limiter bucket key: prefix:ip:user:METHOD path.
func rateKey(prefix string, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	user := "anon"
	if v := c.Get("user_id"); v != nil {
		user = fmt.Sprint(v)
	}
	route := c.Request().Method + " " + c.Path()
	return strings.Join([]string{prefix, ip, user, route}, ":")
}
