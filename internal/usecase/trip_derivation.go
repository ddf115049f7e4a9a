package usecase

import (
	"flightlist-service/internal/domain/entity"
	"flightlist-service/pkg/utils"
)

// TripSummary is the derived view of a trip selection
type TripSummary struct {
	PriceINR int `json:"priceInr"`
	// DurationDays is nil unless both legs are selected with readable dates
	DurationDays *int `json:"durationDays"`
}

// HasDuration reports whether a stay length is known
func (t TripSummary) HasDuration() bool {
	return t.DurationDays != nil
}

// DeriveTrip computes the combined price and the stay length in calendar days.
// It reads the selection as is and never repairs leg ordering.
func DeriveTrip(trip entity.TripSelection) TripSummary {
	var summary TripSummary
	if trip.Outbound != nil {
		summary.PriceINR += trip.Outbound.PriceINR
	}
	if trip.Return != nil {
		summary.PriceINR += trip.Return.PriceINR
	}

	if trip.Outbound == nil || trip.Return == nil {
		return summary
	}
	outbound, err := utils.ParseISODate(trip.Outbound.Date)
	if err != nil {
		return summary
	}
	back, err := utils.ParseISODate(trip.Return.Date)
	if err != nil {
		return summary
	}
	days := utils.CalendarDaysBetween(outbound, back)
	summary.DurationDays = &days
	return summary
}
