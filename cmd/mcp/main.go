package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"devreg/pkg/config"
	"devreg/pkg/db"
	"devreg/pkg/device/schema"
	devregmcp "devreg/pkg/mcp"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.Load()

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ./devices.db, env DEVICES_DB)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(config.DBPath(*dbPath))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Seed sample devices on first run
	if err := database.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	validator, err := schema.NewValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build request validator")
	}

	// Create and start MCP server
	mcpServer := devregmcp.NewServer(database, validator)

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
