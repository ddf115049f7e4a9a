package entity

import (
	"net/url"
	"strconv"
)

// BaggageOption filters flights by checked-luggage policy
type BaggageOption string

const (
	BaggageAll      BaggageOption = "all"
	BaggageFree     BaggageOption = "free"
	BaggageIncluded BaggageOption = "included"
)

// Valid reports whether o is one of the known options
func (o BaggageOption) Valid() bool {
	switch o {
	case BaggageAll, BaggageFree, BaggageIncluded:
		return true
	}
	return false
}

// FlightQuery is the parameter set sent to the flight data provider.
// Zero values are omitted from the encoded query.
type FlightQuery struct {
	Page        int
	Origin      string
	Destination string
	MaxRain     int
	MaxPrice    int
	SortBy      string
	Airline     string
}

// Values encodes the query as URL parameters
func (q FlightQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	if q.Origin != "" {
		values.Set("origin", q.Origin)
	}
	if q.Destination != "" {
		values.Set("destination", q.Destination)
	}
	if q.MaxRain > 0 {
		values.Set("max_rain", strconv.Itoa(q.MaxRain))
	}
	if q.MaxPrice > 0 {
		values.Set("max_price", strconv.Itoa(q.MaxPrice))
	}
	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}
	if q.Airline != "" {
		values.Set("airline", q.Airline)
	}
	return values
}
