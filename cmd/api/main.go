package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"devreg/pkg/api"
	"devreg/pkg/config"
	"devreg/pkg/db"
	"devreg/pkg/device/schema"

	_ "devreg/docs"
)

// @title           Device Registry API
// @version         1.0
// @description     REST API for registering and managing IoT device records

// @host      localhost:8080
// @BasePath  /
// @schemes   http

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.Load()

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ./devices.db, env DEVICES_DB)")
	addr := flag.String("addr", "", "Listen address (default: :8080, env PORT)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(config.DBPath(*dbPath))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Seed sample devices on first run
	needsSeed, err := database.NeedsSeed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check seed status")
	}
	if needsSeed {
		log.Info().Msg("Empty store detected, seeding sample devices...")
		if err := database.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
		log.Info().Msg("Sample devices seeded")
	}

	validator, err := schema.NewValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build request validator")
	}

	router := api.NewRouter(database, validator)

	listenAddr := config.Addr(*addr, ":8080")
	server := &http.Server{
		Addr:    listenAddr,
		Handler: router.Handler(),
	}

	// Serve until interrupted
	go func() {
		log.Info().Str("address", listenAddr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Shutdown order: stop accepting connections and drain in-flight
	// requests, then close the store.
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down server cleanly")
	}
	if err := database.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("Shutdown complete")
}
