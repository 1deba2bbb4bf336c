package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/courtbook/docs"
	"github.com/kirinyoku/courtbook/internal/app"
	"github.com/kirinyoku/courtbook/internal/config"
	"github.com/kirinyoku/courtbook/internal/logger"
)

// @title Courtbook API
// @version 1.0
// @description Sports facility listings, weekly court slots and bookings.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		log.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
