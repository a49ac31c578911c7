package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/acme-cleaning/robomapper/internal/api"
	"github.com/acme-cleaning/robomapper/internal/db"
)

var (
	listen = flag.String("listen", ":8080", "Listen address")
	dbFile = flag.String("db", "cleaning_sessions.db", "Path to the session history database")
)

func main() {
	flag.Parse()

	// Subcommands run and exit before the server starts.
	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "migrate":
			db.RunMigrateCommand(args[1:], *dbFile)
			return
		default:
			log.Fatalf("unknown command %q", args[0])
		}
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	database, err := db.Open(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(api.NewServer(database).ServeMux()),
	}

	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("RoboMapper API listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for signal, then shut down with a timeout
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Print("Graceful shutdown complete")
}
