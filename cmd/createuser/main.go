package main

import (
	"context"
	"flag"

	"tasktrack/internal/auth"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/logger"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

// Registers an account directly against the database, bypassing the API.
// Useful for bootstrapping a first user or seeding a test environment.
func main() {
	username := flag.String("username", "testuser", "username to create")
	password := flag.String("password", "", "password for the account")
	flag.Parse()

	if *password == "" {
		logger.Fatal("-password is required")
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	auth.InitJWT(cfg.JWTSecret)

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("schema bootstrap failed", "error", err)
	}

	users := service.NewUserService(repository.NewUserRepository(pool), cfg.BcryptCost)
	u, err := users.Register(ctx, *username, *password)
	if err != nil {
		logger.Fatal("create user failed", "error", err)
	}
	logger.Info("user created", "id", u.ID, "username", u.Username)

	token, err := auth.GenerateToken(u.Username)
	if err != nil {
		logger.Fatal("failed to generate token", "error", err)
	}
	logger.Info("token issued", "token", token)
}
