package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/arkhipovd/storefront/internal/config"
	"github.com/arkhipovd/storefront/internal/events"
	"github.com/arkhipovd/storefront/internal/httpserver"
	"github.com/arkhipovd/storefront/internal/logging"
	loggingmw "github.com/arkhipovd/storefront/internal/middleware/logging"
	"github.com/arkhipovd/storefront/internal/service"
	"github.com/arkhipovd/storefront/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	var (
		storage  store.Storage
		sessions store.SessionState
	)
	if cfg.DatabaseURL == "" {
		mem := store.NewMemoryStore()
		storage, sessions = mem, mem
		logger.Info("using in-memory store")
	} else {
		openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		gs, err := store.Open(openCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("store open: %v", err)
		}
		storage, sessions = gs, gs
		logger.Info("using persistent store")
	}

	if cfg.SeedData {
		if err := store.Seed(context.Background(), storage); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		logger.Info("kafka producer enabled", "brokers", cfg.KafkaBrokers)
	}

	authSvc := &service.AuthService{Store: storage, Sessions: sessions, Secret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Store: storage, Producer: producer}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if gs, ok := storage.(*store.GormStore); ok {
		if sqlDB, err := gs.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
