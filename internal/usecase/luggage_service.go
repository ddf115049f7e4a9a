package usecase

import (
	"context"
	"fmt"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/utils"
)

// BaggageWeightOptions are the selectable checked-baggage weights
var BaggageWeightOptions = []string{"20kg", "30kg", "40kg", "50kg", "60kg", "70kg"}

// LuggageService answers luggage policy and baggage cost questions
type LuggageService struct {
	policyRepo repository.LuggagePolicyRepository
	logger     logger.Logger
}

// NewLuggageService creates a new luggage service
func NewLuggageService(policyRepo repository.LuggagePolicyRepository, logger logger.Logger) *LuggageService {
	return &LuggageService{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Policy returns the luggage policy of airline
func (s *LuggageService) Policy(ctx context.Context, airline string) (*entity.AirlineLuggagePolicy, error) {
	policy, err := s.policyRepo.GetByAirline(ctx, airline)
	if err != nil {
		return nil, fmt.Errorf("failed to get luggage policy: %w", err)
	}
	return policy, nil
}

// Policies returns every known luggage policy
func (s *LuggageService) Policies(ctx context.Context) ([]entity.AirlineLuggagePolicy, error) {
	policies, err := s.policyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list luggage policies: %w", err)
	}
	return policies, nil
}

// BaggageCost returns the price of checked baggage of the given weight when
// it must be bought separately. It is 0 unless option is "included" and the
// airline sells extra checked tiers.
func (s *LuggageService) BaggageCost(ctx context.Context, flight entity.Flight, option entity.BaggageOption, weight string) int {
	if option != entity.BaggageIncluded {
		return 0
	}
	policy, err := s.policyRepo.GetByAirline(ctx, flight.Airline)
	if err != nil {
		s.logger.Debug("No luggage policy for airline", "airline", flight.Airline, "error", err)
		return 0
	}
	if !policy.HasExtraOptions() {
		return 0
	}

	weight = utils.NormalizeWeight(weight)
	for _, tier := range policy.ExtraCheckedOptions {
		if tier.Weight == weight {
			return tier.BeforeThreeHours
		}
	}
	return 0
}

// WeightOptions returns a copy of BaggageWeightOptions
func (s *LuggageService) WeightOptions() []string {
	out := make([]string, len(BaggageWeightOptions))
	copy(out, BaggageWeightOptions)
	return out
}
