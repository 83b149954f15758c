// Command seed creates an admin account and a demo user for local
// development.  It is idempotent: existing accounts are left in place,
// and the admin email is promoted to ADMIN if a plain user already
// holds it.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/tired-surtr/stretch-backend/internal/config"
	"github.com/tired-surtr/stretch-backend/internal/database"
	"github.com/tired-surtr/stretch-backend/internal/model"
	"github.com/tired-surtr/stretch-backend/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seed(ctx, users, cfg.BcryptCost, "Admin User", "admin@example.com", "adminpass123", model.RoleAdmin)
	seed(ctx, users, cfg.BcryptCost, "Test User", "test@example.com", "password123", model.RoleUser)
}

func seed(ctx context.Context, users *repository.UserRepo, cost int, name, email, password, role string) {
	if _, err := users.GetByEmail(ctx, email); err == nil {
		if role == model.RoleAdmin {
			if err := users.EnsureRole(ctx, email, role); err != nil {
				log.Fatalf("promote %s: %v", email, err)
			}
			log.Printf("%s already exists; ensured role=%s", email, role)
			return
		}
		log.Printf("%s already exists", email)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Fatalf("lookup %s: %v", email, err)
	}

	id, err := users.Create(ctx, &name, email, password, role, cost)
	if err != nil {
		log.Fatalf("create %s: %v", email, err)
	}
	log.Printf("created %s user id=%d email=%s password=%s", role, id, email, password)
}
