// internal/domain/entity/flight.go
package entity

// Flight is one leg offered by the flight data provider. Identity is UUID.
type Flight struct {
	UUID               string `json:"uuid" bson:"uuid" validate:"required"`
	Date               string `json:"date" bson:"date" validate:"required"`
	Origin             string `json:"origin" bson:"origin" validate:"required"`
	Destination        string `json:"destination" bson:"destination" validate:"required"`
	Airline            string `json:"airline" bson:"airline" validate:"required"`
	Time               string `json:"time" bson:"time"`
	Duration           string `json:"duration" bson:"duration"`
	FlightType         string `json:"flight_type" bson:"flightType"`
	PriceINR           int    `json:"price_inr" bson:"priceInr" validate:"gte=0"`
	OriginCountry      string `json:"origin_country" bson:"originCountry"`
	DestinationCountry string `json:"destination_country" bson:"destinationCountry"`
	RainProbability    int    `json:"rain_probability" bson:"rainProbability" validate:"gte=0,lte=100"`
	FreeMeal           *bool  `json:"free_meal,omitempty" bson:"freeMeal,omitempty"`

	// Optional fields some provider deployments include
	Link                    string  `json:"link,omitempty" bson:"link,omitempty"`
	MinCheckedLuggagePrice  *int    `json:"min_checked_luggage_price,omitempty" bson:"minCheckedLuggagePrice,omitempty"`
	MinCheckedLuggageWeight *string `json:"min_checked_luggage_weight,omitempty" bson:"minCheckedLuggageWeight,omitempty"`
	TotalWithMinLuggage     *int    `json:"total_with_min_luggage,omitempty" bson:"totalWithMinLuggage,omitempty"`
}

// HasFreeMeal reports whether the provider flagged a complimentary meal
func (f Flight) HasFreeMeal() bool {
	return f.FreeMeal != nil && *f.FreeMeal
}

// FlightPage is a single page returned by the flight data provider
type FlightPage struct {
	Data       []Flight `json:"data"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalItems int      `json:"total_items"`
}
