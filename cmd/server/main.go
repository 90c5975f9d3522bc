/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the sales reporting engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Read environment config, then command-line flag overrides
  2. Configure structured logging
  3. Initialize SQLite store and seed demo accounts
  4. Create API handler with dependencies
  5. Start overdue sweeper and HTTP server with graceful shutdown

CONFIGURATION:
  Environment (prefix SALES_):
    SALES_PORT           HTTP server port (default: 8080)
    SALES_DB_PATH        SQLite database path (default: sales.db)
    SALES_LOG_LEVEL      debug|info|warn|error (default: info)
    SALES_LOG_JSON       true for JSON log output (default: false)
    SALES_SWEEP_INTERVAL Overdue sweep interval (default: 1h)

  Flags override the environment:
    -port    HTTP server port
    -db      SQLite database path (":memory:" for in-memory)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the overdue sweeper, close the database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/sales.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/traveldesk/sales-engine/api"
	"github.com/traveldesk/sales-engine/store/sqlite"
)

// Config holds server settings, read from SALES_* environment variables.
type Config struct {
	Port          int           `envconfig:"PORT" default:"8080"`
	DBPath        string        `envconfig:"DB_PATH" default:"sales.db"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON       bool          `envconfig:"LOG_JSON" default:"false"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("sales", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	log := newLogger(cfg)

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, log)

	// Seed demo accounts on an empty user table
	if err := handler.Auth.SeedDemoUsers(context.Background()); err != nil {
		log.WithError(err).Warn("failed to seed demo users")
	}

	// Background overdue sweep
	sweeper := api.NewOverdueSweeper(store, log)
	sweeper.CheckInterval = cfg.SweepInterval
	sweeper.Start()
	defer sweeper.Stop()

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
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func newLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
