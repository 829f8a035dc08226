package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"

	"moviemagic/internal/config"
	"moviemagic/internal/container"
	"moviemagic/internal/handlers"
	"moviemagic/internal/logger"
)

func main() {
	logger.Init()
	log := logger.Get()

	if err := godotenv.Load(".env.local"); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	c, err := container.New(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer c.Close()

	router := handlers.NewRouter(handlers.RouterConfig{
		Verifier:  c.Verifier,
		Media:     c.Media,
		Reviews:   c.Reviews,
		Profiles:  c.Profiles,
		Favorites: c.Favorites,
		Trending:  c.Trending,
		Catalog:   c.Catalog,
		Logger:    c.Logger,
	})

	port := config.ServerConfig()
	log.Infof("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
