package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"replymate/internal/adapters/storage/sqlite"
	"replymate/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Bootstrapping storage at: %s", cfg.Storage.Path)

	// Ensure storage directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		log.Fatalf("Failed to create storage directory: %v", err)
	}

	// Initialize storage adapter
	storage, err := sqlite.NewAdapter(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	// Run schema bootstrap
	ctx := context.Background()
	if err := storage.Migrate(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Storage ready")
}
