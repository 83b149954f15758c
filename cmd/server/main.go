package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tired-surtr/stretch-backend/internal/allocation"
	"github.com/tired-surtr/stretch-backend/internal/config"
	"github.com/tired-surtr/stretch-backend/internal/database"
	"github.com/tired-surtr/stretch-backend/internal/handler"
	"github.com/tired-surtr/stretch-backend/internal/middleware"
	"github.com/tired-surtr/stretch-backend/internal/queue"
	"github.com/tired-surtr/stretch-backend/internal/repository"
	"github.com/tired-surtr/stretch-backend/internal/router"
	queue_publisher "github.com/tired-surtr/stretch-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client turns the limiter and cache into
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.CacheGET(config.LoadCacheConfig(), rdb)

	// Repositories and the allocation coordinator.
	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	bookings := repository.NewBookingRepo(db)
	ledger := repository.NewBookingLedger(db)
	coordinator := allocation.NewCoordinator(ledger, cfg.RequireUser, queue_publisher.PublishSeatBooked)

	authHandler := handler.NewAuthHandler(cfg, users)
	sessionHandler := handler.NewSessionHandler(sessions, bookings)
	bookingHandler := handler.NewBookingHandler(coordinator, bookings)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, limiter)
	router.RegisterSessions(e, sessionHandler, bookingHandler, cfg.JWTSecret, cache)
	router.RegisterBookings(e, bookingHandler, cfg, limiter)

	// Drain seat.booked events into logs/booking.log in the background.
	go func() {
		if err := queue.StartSeatBookedConsumer(); err != nil {
			log.Printf("seat-booked consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
