// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tired-surtr/stretch-backend/internal/config"
	"github.com/tired-surtr/stretch-backend/internal/handler"
	"github.com/tired-surtr/stretch-backend/internal/middleware"
	"github.com/tired-surtr/stretch-backend/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login under /v1/auth and the
// authenticated /v1/me endpoint.  The rate limiter guards the credential
// endpoints against brute forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterSessions registers the session catalog.  Listing and detail
// are public; the listing additionally sits behind the Redis response
// cache.  Creation requires an authenticated ADMIN.
func RegisterSessions(e *echo.Echo, s *handler.SessionHandler, b *handler.BookingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/v1/sessions", s.List, cache)
	e.GET("/v1/sessions/:id", s.Get)
	e.GET("/v1/sessions/:id/bookings", b.ListBySession)

	admin := e.Group("/v1/sessions")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", s.Create)
}

// RegisterBookings registers booking creation and the caller's booking
// list.  When cfg.RequireUser is false the create route runs without
// JWT middleware and the coordinator accepts an anonymous caller;
// listing one's own bookings always needs an identity.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, cfg config.Config, limiter echo.MiddlewareFunc) {
	if cfg.RequireUser {
		g := e.Group("/v1/bookings")
		g.Use(middleware.JWTAuth(cfg.JWTSecret))
		g.POST("", b.Create, limiter)
		g.GET("", b.ListMine)
		return
	}
	e.POST("/v1/bookings", b.Create, limiter)
	mine := e.Group("/v1/bookings")
	mine.Use(middleware.JWTAuth(cfg.JWTSecret))
	mine.GET("", b.ListMine)
}
