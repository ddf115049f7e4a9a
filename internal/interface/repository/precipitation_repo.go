package repository

import (
	"context"
	"fmt"
	"time"

	"flightlist-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPrecipitationRepository implements PrecipitationRepository
type MongoPrecipitationRepository struct {
	collection *mongo.Collection
}

type precipitationDocument struct {
	City      string             `bson:"city"`
	RainyDays map[string]float64 `bson:"rainyDays"`
	Position  int                `bson:"position"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// NewMongoPrecipitationRepository creates a new precipitation repository
func NewMongoPrecipitationRepository(ctx context.Context, db *mongo.Database) (*MongoPrecipitationRepository, error) {
	collection := db.Collection("precipitation")

	// Create unique index on city
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"city": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create precipitation index: %w", err)
	}

	return &MongoPrecipitationRepository{
		collection: collection,
	}, nil
}

// List returns every city ordered by its seeded position
func (r *MongoPrecipitationRepository) List(ctx context.Context) ([]entity.CityPrecipitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query precipitation: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []precipitationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode precipitation: %w", err)
	}

	cities := make([]entity.CityPrecipitation, 0, len(docs))
	for _, doc := range docs {
		cities = append(cities, entity.CityPrecipitation{City: doc.City, RainyDays: doc.RainyDays})
	}
	return cities, nil
}

// Seed upserts cities keeping their slice order
func (r *MongoPrecipitationRepository) Seed(ctx context.Context, cities []entity.CityPrecipitation) error {
	now := time.Now()
	for i, city := range cities {
		update := bson.M{
			"$set": bson.M{
				"city":      city.City,
				"rainyDays": city.RainyDays,
				"position":  i,
				"updatedAt": now,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := r.collection.UpdateOne(ctx, bson.M{"city": city.City}, update, opts); err != nil {
			return fmt.Errorf("failed to upsert precipitation for %s: %w", city.City, err)
		}
	}
	return nil
}
