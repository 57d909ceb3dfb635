package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is for local development; production uses the real environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("production")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment)
	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting "+cfg.App.Name, map[string]interface{}{
		"env":     cfg.App.Environment,
		"version": cfg.App.Version,
		"store":   cfg.Store.Driver,
	})

	if err := Serve(cfg); err != nil {
		logger.Error("Server stopped with error", err)
		os.Exit(1)
	}
}
