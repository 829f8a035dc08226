// Seeds the media catalog from the external source's popular feeds. Runs
// out of process from the gateway: once by default, on a ticker when
// SEED_INTERVAL is set (e.g. "6h").
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"moviemagic/internal/config"
	"moviemagic/internal/container"
	"moviemagic/internal/logger"
	"moviemagic/internal/services"
)

func main() {
	logger.Init()
	log := logger.Get()

	if err := godotenv.Load(".env.local"); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	c, err := container.NewIngest(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer c.Close()

	ingest := services.NewIngestService(c.Catalog, c.Media, log)

	if raw := config.GetEnv("SEED_INTERVAL", ""); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			log.WithError(err).Fatal("Invalid SEED_INTERVAL")
		}
		ingest.RunEvery(context.Background(), interval)
		return
	}

	if err := ingest.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
