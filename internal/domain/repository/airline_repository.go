package repository

import (
	"context"
	"errors"

	"flightlist-service/internal/domain/entity"
)

// ErrNotFound is returned by reference lookups for unknown keys
var ErrNotFound = errors.New("not found")

// LuggagePolicyRepository defines read access to airline luggage policies
type LuggagePolicyRepository interface {
	GetByAirline(ctx context.Context, airline string) (*entity.AirlineLuggagePolicy, error)
	List(ctx context.Context) ([]entity.AirlineLuggagePolicy, error)
}
