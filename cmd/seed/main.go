// Command seed loads the built-in reference tables into PostgreSQL and MongoDB
package main

import (
	"context"
	"time"

	"flightlist-service/internal/infrastructure/config"
	"flightlist-service/internal/infrastructure/persistence"
	refRepo "flightlist-service/internal/interface/repository"
	"flightlist-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if !cfg.UsePostgres() && !cfg.UseMongo() {
		log.Warn("Neither POSTGRES_DSN nor MONGODB_DSN is set, nothing to seed")
		return
	}

	if cfg.UsePostgres() {
		db, err := persistence.NewPostgresDB(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		defer persistence.ClosePostgresDB(db)

		if err := refRepo.NewGormLuggagePolicyRepository(db).Seed(ctx, refRepo.DefaultLuggagePolicies); err != nil {
			log.Fatal("Failed to seed luggage policies", "error", err)
		}
		log.Info("Seeded luggage policies", "count", len(refRepo.DefaultLuggagePolicies))

		if err := refRepo.NewGormRouteRepository(db).Seed(ctx, refRepo.DefaultRoutes); err != nil {
			log.Fatal("Failed to seed routes", "error", err)
		}
		log.Info("Seeded routes", "count", len(refRepo.DefaultRoutes))
	}

	if cfg.UseMongo() {
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer client.Disconnect(context.Background())

		repo, err := refRepo.NewMongoPrecipitationRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to set up precipitation repository", "error", err)
		}
		if err := repo.Seed(ctx, refRepo.DefaultPrecipitation); err != nil {
			log.Fatal("Failed to seed precipitation", "error", err)
		}
		log.Info("Seeded precipitation", "count", len(refRepo.DefaultPrecipitation))
	}
}
