package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/diagnosis/patrol-checkpoints/internal/database"
	"github.com/diagnosis/patrol-checkpoints/internal/security"
	"github.com/diagnosis/patrol-checkpoints/pkg/config"
	pgdb "github.com/diagnosis/patrol-checkpoints/pkg/database"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

// setup creates the schema and seeds default roles, schedule and the first admin.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", "error", err)
	}
	logger.SetOutput(os.Stdout, os.Getenv("LOG_LEVEL"))

	if err := run(); err != nil {
		logger.Error("Setup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Setup complete")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgdb.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	opts := database.SeedOptions{
		AdminName:     os.Getenv("SETUP_ADMIN_NAME"),
		AdminUsername: os.Getenv("SETUP_ADMIN_USERNAME"),
	}
	if opts.AdminUsername == "" {
		opts.AdminUsername = "admin"
	}
	if pw := os.Getenv("SETUP_ADMIN_PASSWORD"); pw != "" {
		hash, err := security.NewPasswordHasher().Hash(pw)
		if err != nil {
			return err
		}
		opts.AdminPasswordHash = hash
	} else {
		logger.Warn("SETUP_ADMIN_PASSWORD not set, skipping admin user")
	}

	return database.Seed(ctx, pool, opts)
}
