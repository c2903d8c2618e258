package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Rate limiting and tag caching degrade to disabled.
		log.Printf("Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, image upload disabled: %v", err)
		s3Config = nil
	}

	srv := server.New(cfg, db, redisClient, s3Config)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
