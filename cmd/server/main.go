package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todo-tracker-api/internal/config"
	"todo-tracker-api/internal/database"
	"todo-tracker-api/internal/handlers"
	"todo-tracker-api/internal/middleware"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/routes"
	"todo-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}

	// Wire repositories, services and handlers
	todoRepo := repository.NewTodoRepository(database.GetDB())
	statsRepo := repository.NewStatsRepository(database.GetDB())
	todoService := services.NewTodoService(todoRepo, statsRepo)
	todoHandler := handlers.NewTodoHandler(todoService)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	routes.Setup(r, todoHandler)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
