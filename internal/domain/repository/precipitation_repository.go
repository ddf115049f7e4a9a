package repository

import (
	"context"

	"flightlist-service/internal/domain/entity"
)

// PrecipitationRepository defines read access to the monthly rainy-day table
type PrecipitationRepository interface {
	// List returns every city in a stable order
	List(ctx context.Context) ([]entity.CityPrecipitation, error)
}
