package usecase

import (
	"context"
	"fmt"
	"net/url"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/pkg/utils"
)

const (
	flightSearchURL = "https://www.google.com/search"
	// Flights leaving this country are outbound legs
	homeCountry = "India"
)

// FlightCard is the per-row projection of a loaded flight under the
// session's baggage filters and trip selection
type FlightCard struct {
	Flight          entity.Flight `json:"flight"`
	DisplayDate     string        `json:"displayDate"`
	SearchURL       string        `json:"searchUrl"`
	Leg             entity.Leg    `json:"leg"`
	Selected        bool          `json:"selected"`
	FreeMeal        bool          `json:"freeMeal"`
	ShowRainInfo    bool          `json:"showRainInfo"`
	ShowBaggageCost bool          `json:"showBaggageCost"`
	BaggageWeight   string        `json:"baggageWeight"`
	BaggageCostINR  int           `json:"baggageCostInr"`
	TotalINR        int           `json:"totalInr"`
}

// FlightCardList is the rendered list with its trip footer
type FlightCardList struct {
	Version      uint64       `json:"version"`
	Cards        []FlightCard `json:"cards"`
	ShowTrip     bool         `json:"showTrip"`
	Trip         TripSummary  `json:"trip"`
	TripDuration string       `json:"tripDuration,omitempty"`
}

// LegFor returns the trip leg a flight fills
func LegFor(flight entity.Flight) entity.Leg {
	if flight.OriginCountry == homeCountry {
		return entity.LegOutbound
	}
	return entity.LegReturn
}

// FlightSearchURL builds the external "flights from X to Y" search link
func FlightSearchURL(flight entity.Flight) string {
	query := fmt.Sprintf("flights from %s to %s %s one way",
		flight.Origin, flight.Destination, utils.FormatSearchDate(flight.Date))
	return flightSearchURL + "?" + url.Values{"q": {query}}.Encode()
}

// DurationLabel renders the stay length, empty when it is unknown
func (t TripSummary) DurationLabel() string {
	if !t.HasDuration() {
		return ""
	}
	if *t.DurationDays == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", *t.DurationDays)
}

// BuildFlightCards projects every loaded flight of state
func BuildFlightCards(ctx context.Context, luggage *LuggageService, state ListState, trip TripSummary, version uint64) FlightCardList {
	filters := state.Filters
	weight := utils.NormalizeWeight(filters.BaggageWeight)

	cards := make([]FlightCard, 0, len(state.Flights))
	for _, flight := range state.Flights {
		leg := LegFor(flight)
		selected := state.Trip.Get(leg)
		cost := luggage.BaggageCost(ctx, flight, filters.BaggageOption, weight)

		cards = append(cards, FlightCard{
			Flight:          flight,
			DisplayDate:     utils.FormatDisplayDate(flight.Date),
			SearchURL:       FlightSearchURL(flight),
			Leg:             leg,
			Selected:        selected != nil && selected.UUID == flight.UUID,
			FreeMeal:        flight.HasFreeMeal(),
			ShowRainInfo:    flight.RainProbability > 0,
			ShowBaggageCost: filters.BaggageOption == entity.BaggageIncluded,
			BaggageWeight:   weight,
			BaggageCostINR:  cost,
			TotalINR:        flight.PriceINR + cost,
		})
	}

	return FlightCardList{
		Version:      version,
		Cards:        cards,
		ShowTrip:     !state.Trip.IsEmpty(),
		Trip:         trip,
		TripDuration: trip.DurationLabel(),
	}
}
