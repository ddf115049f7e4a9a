package usecase

import (
	"context"
	"fmt"
	"slices"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
)

// RouteService answers questions about the served route graph
type RouteService struct {
	routeRepo repository.RouteRepository
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo repository.RouteRepository) *RouteService {
	return &RouteService{routeRepo: routeRepo}
}

// Routes returns every route
func (s *RouteService) Routes(ctx context.Context) ([]entity.Route, error) {
	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

// Cities returns the unique origins in ascending order
func (s *RouteService) Cities(ctx context.Context) ([]string, error) {
	routes, err := s.Routes(ctx)
	if err != nil {
		return nil, err
	}
	cities := make([]string, 0, len(routes))
	for _, r := range routes {
		cities = append(cities, r.Origin)
	}
	slices.Sort(cities)
	return slices.Compact(cities), nil
}

// Destinations returns the unique destinations reachable from origin in
// ascending order. An empty origin has no destinations.
func (s *RouteService) Destinations(ctx context.Context, origin string) ([]string, error) {
	if origin == "" {
		return []string{}, nil
	}
	routes, err := s.Routes(ctx)
	if err != nil {
		return nil, err
	}
	destinations := []string{}
	for _, r := range routes {
		if r.Origin == origin {
			destinations = append(destinations, r.Destination)
		}
	}
	slices.Sort(destinations)
	return slices.Compact(destinations), nil
}
