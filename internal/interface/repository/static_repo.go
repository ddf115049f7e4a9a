package repository

import (
	"context"
	"fmt"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
)

// StaticLuggagePolicyRepository serves luggage policies from an in-memory table
type StaticLuggagePolicyRepository struct {
	policies []entity.AirlineLuggagePolicy
	byName   map[string]int
}

// NewStaticLuggagePolicyRepository creates a repository over policies (DefaultLuggagePolicies when nil)
func NewStaticLuggagePolicyRepository(policies []entity.AirlineLuggagePolicy) repository.LuggagePolicyRepository {
	if policies == nil {
		policies = DefaultLuggagePolicies
	}
	byName := make(map[string]int, len(policies))
	for i, p := range policies {
		byName[p.Airline] = i
	}
	return &StaticLuggagePolicyRepository{policies: policies, byName: byName}
}

// GetByAirline finds a policy by exact airline name
func (r *StaticLuggagePolicyRepository) GetByAirline(ctx context.Context, airline string) (*entity.AirlineLuggagePolicy, error) {
	i, ok := r.byName[airline]
	if !ok {
		return nil, fmt.Errorf("luggage policy for %q: %w", airline, repository.ErrNotFound)
	}
	policy := r.policies[i]
	return &policy, nil
}

// List returns all policies
func (r *StaticLuggagePolicyRepository) List(ctx context.Context) ([]entity.AirlineLuggagePolicy, error) {
	out := make([]entity.AirlineLuggagePolicy, len(r.policies))
	copy(out, r.policies)
	return out, nil
}

// StaticRouteRepository serves the route graph from memory
type StaticRouteRepository struct {
	routes []entity.Route
}

// NewStaticRouteRepository creates a repository over routes (DefaultRoutes when nil)
func NewStaticRouteRepository(routes []entity.Route) repository.RouteRepository {
	if routes == nil {
		routes = DefaultRoutes
	}
	return &StaticRouteRepository{routes: routes}
}

// List returns all routes
func (r *StaticRouteRepository) List(ctx context.Context) ([]entity.Route, error) {
	out := make([]entity.Route, len(r.routes))
	copy(out, r.routes)
	return out, nil
}

// StaticPrecipitationRepository serves the rainy-day table from memory
type StaticPrecipitationRepository struct {
	cities []entity.CityPrecipitation
}

// NewStaticPrecipitationRepository creates a repository over cities (DefaultPrecipitation when nil)
func NewStaticPrecipitationRepository(cities []entity.CityPrecipitation) repository.PrecipitationRepository {
	if cities == nil {
		cities = DefaultPrecipitation
	}
	return &StaticPrecipitationRepository{cities: cities}
}

// List returns every city in table order
func (r *StaticPrecipitationRepository) List(ctx context.Context) ([]entity.CityPrecipitation, error) {
	out := make([]entity.CityPrecipitation, len(r.cities))
	copy(out, r.cities)
	return out, nil
}
