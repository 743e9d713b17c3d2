package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Davazzzz/carparts-request/internal/catalog"
	"github.com/Davazzzz/carparts-request/internal/config"
	"github.com/Davazzzz/carparts-request/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()

	// Select the storage backend once: PostgreSQL when DATABASE_URL is set,
	// the flat-file document otherwise.
	requests, err := store.Open(store.Config{
		DatabaseURL: cfg.Storage.DatabaseURL,
		DataFile:    cfg.Storage.DataFile,
	})
	if err != nil {
		log.Fatalf("Failed to open request store: %v", err)
	}
	defer requests.Close()

	if cfg.Storage.DatabaseURL != "" {
		log.Println("Using PostgreSQL request store")
	} else {
		log.Printf("DATABASE_URL not set, using flat-file store at %s", cfg.Storage.DataFile)
	}

	// Handle migrate-only flag
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	// Load the parts catalog; a missing pricing file leaves it empty but
	// does not stop the server.
	prices := catalog.Load(cfg.Storage.PricingFile)

	// Create application handler
	appHandler := NewApp(requests, prices, cfg)

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Customer page: http://localhost:%s", cfg.Server.Port)
		log.Printf("Admin panel:   http://localhost:%s/admin", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
