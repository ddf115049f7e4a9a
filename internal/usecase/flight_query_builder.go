package usecase

import "flightlist-service/internal/domain/entity"

// Provider query constants
const (
	DrySeasonMaxRain  = 20
	BudgetMaxPriceINR = 10000
	SortByDate        = "date"
)

// Airline lists sent for the baggage filters
const (
	FreeBaggageAirlines     = "Vietnam Airlines,Air India"
	IncludedBaggageAirlines = "VietJet Air"
)

// BuildFlightQuery maps filter selections to provider query parameters
func BuildFlightQuery(filters Filters, page int) entity.FlightQuery {
	query := entity.FlightQuery{
		Page:        page,
		Origin:      filters.Origin,
		Destination: filters.Destination,
	}
	if filters.DrySeasonOnly {
		query.MaxRain = DrySeasonMaxRain
	}
	if filters.PriceUnder10k {
		query.MaxPrice = BudgetMaxPriceINR
	}
	if filters.SortByDate {
		query.SortBy = SortByDate
	}

	switch filters.BaggageOption {
	case entity.BaggageFree:
		query.Airline = FreeBaggageAirlines
	case entity.BaggageIncluded:
		query.Airline = IncludedBaggageAirlines
	}
	return query
}
