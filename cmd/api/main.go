package main

import (
	"log"

	"seopilot/internal/api"
	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Load keyword lexicon (built-in defaults unless a YAML override is set)
	lex, err := config.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		logger.Fatal("Failed to load lexicon: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Initialize API server
	server := api.New(cfg, lex, logger, db)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
