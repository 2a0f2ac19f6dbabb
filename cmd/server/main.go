package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/shopstack/shopstack/internal/config"
	"github.com/shopstack/shopstack/internal/db"
	"github.com/shopstack/shopstack/internal/es"
	"github.com/shopstack/shopstack/internal/events"
	"github.com/shopstack/shopstack/internal/httpserver"
	"github.com/shopstack/shopstack/internal/logging"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/search"
	"github.com/shopstack/shopstack/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchSvc = search.NewService(esClient)
	} else {
		logger.Warn("ES_URL not set, search disabled")
	}

	gormRepo := repo.NewGormRepo(gormDB)
	cartSvc := &service.CartService{Repo: gormRepo}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	authSvc := &service.AuthService{Repo: gormRepo, SessionSecret: cfg.SessionSecret}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Producer: producer},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Indexer: searchSvc, Producer: producer},
		SearchHandler:  &httpserver.SearchHTTP{Svc: searchSvc},
		SessionSecret:  cfg.SessionSecret,
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
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Printf("server shutdown: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}

	log.Println("shutdown complete")
}
