package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/supplysight/sync-agent/internal/bridge"
	"github.com/supplysight/sync-agent/internal/config"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	b := bridge.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down bridge...")
		cancel()
	}()

	// Blocks until the context is cancelled and shutdown finishes.
	if err := b.Start(ctx); err != nil {
		log.Fatalf("Bridge failed: %v", err)
	}

	log.Println("Bridge shutdown complete")
}
