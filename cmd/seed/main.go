package main

import (
	"context"
	"log"
	"time"

	"github.com/shopstack/shopstack/internal/config"
	"github.com/shopstack/shopstack/internal/db"
	"github.com/shopstack/shopstack/internal/seed"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	password := config.EnvDefault("SEED_USER_PASSWORD", "password")
	if err := seed.Run(ctx, gormDB, password); err != nil {
		log.Fatalf("seed: %v", err)
	}

	log.Println("seed completed")
}
