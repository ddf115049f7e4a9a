package entity

import "time"

// Months lists the short month names in calendar order
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CityPrecipitation holds the average number of rainy days per month for a city
type CityPrecipitation struct {
	City      string             `json:"city" bson:"city"`
	RainyDays map[string]float64 `json:"rainyDays" bson:"rainyDays"`
}

// ForMonth returns the rainy days of the given month, 0 when unknown
func (c CityPrecipitation) ForMonth(m time.Month) float64 {
	if m < time.January || m > time.December {
		return 0
	}
	return c.RainyDays[Months[m-1]]
}
