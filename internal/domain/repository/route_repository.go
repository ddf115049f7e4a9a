package repository

import (
	"context"

	"flightlist-service/internal/domain/entity"
)

// RouteRepository defines read access to the served route graph
type RouteRepository interface {
	List(ctx context.Context) ([]entity.Route, error)
}
