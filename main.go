package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-form/cliparse"
	"github.com/danielhkuo/quickly-form/db"
	"github.com/danielhkuo/quickly-form/formstore"
	"github.com/danielhkuo/quickly-form/middleware"
	"github.com/danielhkuo/quickly-form/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to the relational store
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.PingContext(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Form definitions come from MongoDB when configured, else a YAML file
	var forms formstore.Store
	if cfg.MongoURI != "" {
		mongoStore, err := formstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			slog.Error("form store connection failed", "error", err)
			os.Exit(1)
		}
		defer mongoStore.Close(context.Background())
		forms = mongoStore
		slog.Info("Form store ready", "backend", "mongo", "database", cfg.MongoDatabase)
	} else {
		fileStore, err := formstore.LoadYAML(cfg.FormsFile)
		if err != nil {
			slog.Error("form file load failed", "path", cfg.FormsFile, "error", err)
			os.Exit(1)
		}
		forms = fileStore
		slog.Info("Form store ready", "backend", "yaml", "path", cfg.FormsFile)
	}

	mux := router.NewRouter(dbConn, forms, cfg)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return
	}
	<-done
	slog.Info("Server closed")
}
