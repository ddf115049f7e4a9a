package mocks

import (
	"context"

	"flightlist-service/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockFlightProvider is a mock implementation of repository.FlightProvider
type MockFlightProvider struct {
	mock.Mock
}

func (m *MockFlightProvider) FetchFlights(ctx context.Context, query entity.FlightQuery) (*entity.FlightPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlightPage), args.Error(1)
}

// MockLuggagePolicyRepository is a mock implementation of repository.LuggagePolicyRepository
type MockLuggagePolicyRepository struct {
	mock.Mock
}

func (m *MockLuggagePolicyRepository) GetByAirline(ctx context.Context, airline string) (*entity.AirlineLuggagePolicy, error) {
	args := m.Called(ctx, airline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AirlineLuggagePolicy), args.Error(1)
}

func (m *MockLuggagePolicyRepository) List(ctx context.Context) ([]entity.AirlineLuggagePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AirlineLuggagePolicy), args.Error(1)
}
