package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"flightlist-service/internal/domain/repository"
	"flightlist-service/internal/infrastructure/config"
	"flightlist-service/internal/infrastructure/persistence"
	"flightlist-service/internal/infrastructure/router"
	"flightlist-service/internal/interface/httpapi"
	refRepo "flightlist-service/internal/interface/repository"
	"flightlist-service/internal/usecase"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight List Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reference data: PostgreSQL for luggage policies and routes when configured
	var (
		luggageRepository repository.LuggagePolicyRepository = refRepo.NewStaticLuggagePolicyRepository(nil)
		routeRepository   repository.RouteRepository         = refRepo.NewStaticRouteRepository(nil)
		gormDB            *gorm.DB
	)
	if cfg.UsePostgres() {
		log.Info("Connecting to PostgreSQL")
		gormDB, err = persistence.NewPostgresDB(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		luggageRepository = refRepo.NewGormLuggagePolicyRepository(gormDB)
		routeRepository = refRepo.NewGormRouteRepository(gormDB)
	}

	// Precipitation table from MongoDB when configured
	var (
		precipitationRepository repository.PrecipitationRepository = refRepo.NewStaticPrecipitationRepository(nil)
		mongoClient             *mongo.Client
	)
	if cfg.UseMongo() {
		log.Info("Connecting to MongoDB")
		var db *mongo.Database
		mongoClient, db, err = persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoRepo, err := refRepo.NewMongoPrecipitationRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to set up precipitation repository", "error", err)
		}
		precipitationRepository = mongoRepo
	}

	// Metrics
	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Flight data provider
	flightProvider := refRepo.NewFlightAPIRepository(cfg.FlightsAPIURL, &http.Client{}, log)

	// Use cases
	luggageService := usecase.NewLuggageService(luggageRepository, log)
	sessions := usecase.NewSessionManager(usecase.SessionDeps{
		Provider:     flightProvider,
		Luggage:      luggageService,
		Rain:         usecase.NewRainService(precipitationRepository, nil),
		FetchTimeout: cfg.FetchTimeout,
		Logger:       log,
		Metrics:      m,
	}, cfg.SessionIdleTimeout)
	go sessions.RunSweeper(ctx, time.Minute)

	// HTTP and WebSocket
	actions := router.NewDefaultActionRouter(log)
	hub := httpapi.NewHub(actions, cfg.CORSAllowedOrigin, log)
	handler := httpapi.NewHandler(sessions, actions, usecase.NewRouteService(routeRepository), luggageService, hub, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.SetupRouter(handler, promhttp.Handler(), cfg.CORSAllowedOrigin),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines
	sessions.CloseAll()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}
	if gormDB != nil {
		if err := persistence.ClosePostgresDB(gormDB); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}

	log.Info("Flight List Service stopped")
}
