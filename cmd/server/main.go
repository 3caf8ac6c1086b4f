/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the frequency engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Parse command-line flags (flags override environment)
  3. Initialize SQLite calendar store
  4. Register stored calendars and preload the calendar directory
  5. Start the background calendar refresher
  6. Start server with graceful shutdown

CONFIGURATION:
  Environment (via .env or process environment):
    PORT              HTTP server port (default: 8080)
    DB_PATH           SQLite database path (default: calendars.db)
    CALENDAR_DIR      Directory of YAML calendar files (optional)
    REFRESH_INTERVAL  Calendar directory re-read interval (default: 1h)

  Flags (override environment):
    -port, -db, -calendars, -refresh

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the refresher and close the database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/calendars.db"

  # Run with in-memory database and a calendar directory
  ./server -db=":memory:" -calendars=./calendars

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/warp/frequency-engine/api"
	"github.com/warp/frequency-engine/store/sqlite"
)

// config is the environment-sourced configuration.
type config struct {
	Port            int           `env:"PORT" env-default:"8080"`
	DBPath          string        `env:"DB_PATH" env-default:"calendars.db"`
	CalendarDir     string        `env:"CALENDAR_DIR" env-default:""`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" env-default:"1h"`
}

func main() {
	// .env is optional; real environment variables win over its contents.
	_ = godotenv.Load()

	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	// Flags override environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	calendarDir := flag.String("calendars", cfg.CalendarDir, "directory of YAML calendar files")
	refresh := flag.Duration("refresh", cfg.RefreshInterval, "calendar directory refresh interval")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store)

	// Register stored calendars for conversions
	if err := handler.SyncRegistry(context.Background()); err != nil {
		log.Printf("Warning: Failed to register stored calendars: %v", err)
	}

	// Keep the calendar directory loaded in the background
	var refresher *api.CalendarRefresher
	if *calendarDir != "" {
		refresher = api.NewCalendarRefresher(*calendarDir, handler.Registry)
		refresher.Interval = *refresh
		refresher.Start()
		defer refresher.Stop()
	}

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
