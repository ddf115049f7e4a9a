package usecase

import (
	"slices"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/pkg/utils"
)

// Reduce applies action to state and returns the resulting state.
// It performs no I/O and never mutates memory reachable from state.
func Reduce(state ListState, action Action) ListState {
	switch a := action.(type) {
	case SetFlights:
		state.Flights = slices.Clone(a.Flights)
		if state.Flights == nil {
			state.Flights = []entity.Flight{}
		}
	case AppendFlights:
		state.Flights = mergeFlights(state.Flights, a.Flights)
	case SetTotalCount:
		state.TotalCount = max(a.Count, 0)
	case SetLoading:
		state.Loading = a.Loading
	case SetLoadingMore:
		state.LoadingMore = a.LoadingMore
	case SetPage:
		state.Page = max(a.Page, FirstPage)
	case SetHasMore:
		state.HasMore = a.HasMore
	case SetOrigin:
		state.Filters.Origin = a.City
	case SetDestination:
		state.Filters.Destination = a.City
	case SetBaggageOption:
		if a.Option.Valid() {
			state.Filters.BaggageOption = a.Option
		}
	case SetBaggageWeight:
		state.Filters.BaggageWeight = a.Weight
	case SetDrySeasonOnly:
		state.Filters.DrySeasonOnly = a.Enabled
	case SetPriceUnder10k:
		state.Filters.PriceUnder10k = a.Enabled
	case ToggleSortByDate:
		state.Filters.SortByDate = !state.Filters.SortByDate
	case SwapLocations:
		if state.Filters.Origin != "" && state.Filters.Destination != "" {
			state.Filters.Origin, state.Filters.Destination = state.Filters.Destination, state.Filters.Origin
		}
	case SelectFlight:
		state.Trip = selectLeg(state.Trip, a.Flight, a.Leg)
	case RemoveFlight:
		switch a.Leg {
		case entity.LegOutbound:
			state.Trip.Outbound = nil
		case entity.LegReturn:
			state.Trip.Return = nil
		}
	case OpenLuggagePolicy:
		state.LuggageModal = LuggageModal{Visible: true, Airline: a.Airline}
	case CloseLuggagePolicy:
		state.LuggageModal.Visible = false
	case OpenRainInfo:
		flight := a.Flight
		state.RainModal = RainModal{Visible: true, Flight: &flight}
	case CloseRainInfo:
		state.RainModal.Visible = false
	case ResetList:
		state.Flights = []entity.Flight{}
		state.Page = FirstPage
		state.HasMore = true
	}
	return state
}

// mergeFlights keeps existing order, replaces entries whose uuid reappears
// with the incoming value and appends new uuids at the end. The result never
// holds two flights with the same uuid.
func mergeFlights(existing, incoming []entity.Flight) []entity.Flight {
	merged := make([]entity.Flight, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, list := range [][]entity.Flight{existing, incoming} {
		for _, f := range list {
			if i, ok := index[f.UUID]; ok {
				merged[i] = f
				continue
			}
			index[f.UUID] = len(merged)
			merged = append(merged, f)
		}
	}
	return merged
}

// selectLeg enforces outbound.date <= return.date at write time. Unparseable
// dates never clear the other leg.
func selectLeg(trip entity.TripSelection, flight entity.Flight, leg entity.Leg) entity.TripSelection {
	chosen := &flight
	switch leg {
	case entity.LegOutbound:
		if trip.Return != nil && datesOrdered(trip.Return.Date, flight.Date) {
			trip.Return = nil
		}
		trip.Outbound = chosen
	case entity.LegReturn:
		if trip.Outbound != nil && datesOrdered(flight.Date, trip.Outbound.Date) {
			trip.Outbound = nil
		}
		trip.Return = chosen
	}
	return trip
}

// datesOrdered reports whether date a is strictly before date b
func datesOrdered(a, b string) bool {
	ta, err := utils.ParseISODate(a)
	if err != nil {
		return false
	}
	tb, err := utils.ParseISODate(b)
	if err != nil {
		return false
	}
	return ta.Before(tb)
}
