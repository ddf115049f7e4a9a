package usecase

import (
	"slices"

	"flightlist-service/internal/domain/entity"
)

// Default values a new flight list session starts with
const (
	DefaultBaggageWeight = "20kg"
	FirstPage            = 1
)

// Filters are the user's filter and sort selections. Empty Origin or
// Destination means no restriction.
type Filters struct {
	Origin        string               `json:"origin"`
	Destination   string               `json:"destination"`
	BaggageOption entity.BaggageOption `json:"baggageOption"`
	BaggageWeight string               `json:"baggageWeight"`
	DrySeasonOnly bool                 `json:"drySeasonOnly"`
	PriceUnder10k bool                 `json:"priceUnder10k"`
	SortByDate    bool                 `json:"sortByDate"`
}

// reloadKey is the subset of Filters that changes the server-side result set
type reloadKey struct {
	origin, destination string
	baggage             entity.BaggageOption
	drySeason, price    bool
	sortByDate          bool
}

func (f Filters) reloadKey() reloadKey {
	return reloadKey{
		origin:      f.Origin,
		destination: f.Destination,
		baggage:     f.BaggageOption,
		drySeason:   f.DrySeasonOnly,
		price:       f.PriceUnder10k,
		sortByDate:  f.SortByDate,
	}
}

// LuggageModal is the luggage policy sheet visibility
type LuggageModal struct {
	Visible bool   `json:"visible"`
	Airline string `json:"airline"`
}

// RainModal is the rain forecast sheet visibility
type RainModal struct {
	Visible bool           `json:"visible"`
	Flight  *entity.Flight `json:"flight"`
}

// ListState is the complete flight list screen state. It is only changed
// through Reduce, which always returns a new value.
type ListState struct {
	Flights      []entity.Flight      `json:"flights"`
	TotalCount   int                  `json:"totalCount"`
	Loading      bool                 `json:"loading"`
	LoadingMore  bool                 `json:"loadingMore"`
	Page         int                  `json:"page"`
	HasMore      bool                 `json:"hasMore"`
	Filters      Filters              `json:"filters"`
	Trip         entity.TripSelection `json:"trip"`
	LuggageModal LuggageModal         `json:"luggageModal"`
	RainModal    RainModal            `json:"rainModal"`
}

// NewListState returns the state a screen session starts with
func NewListState() ListState {
	return ListState{
		Flights: []entity.Flight{},
		Loading: true,
		Page:    FirstPage,
		HasMore: true,
		Filters: Filters{
			BaggageOption: entity.BaggageAll,
			BaggageWeight: DefaultBaggageWeight,
		},
	}
}

// IsEmptyResult reports whether a completed query matched nothing. A failed
// first page leaves the same list shape, so callers that track fetch errors
// must rule those out too.
func (s ListState) IsEmptyResult() bool {
	return !s.Loading && len(s.Flights) == 0 && s.TotalCount == 0
}

// IsExhausted reports whether the end-of-list footer applies
func (s ListState) IsExhausted() bool {
	return !s.HasMore && len(s.Flights) > 0
}

// clone returns a copy that shares no mutable memory with s
func (s ListState) clone() ListState {
	s.Flights = slices.Clone(s.Flights)
	if s.Flights == nil {
		s.Flights = []entity.Flight{}
	}
	s.Trip.Outbound = copyFlight(s.Trip.Outbound)
	s.Trip.Return = copyFlight(s.Trip.Return)
	s.RainModal.Flight = copyFlight(s.RainModal.Flight)
	return s
}

func copyFlight(f *entity.Flight) *entity.Flight {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
