package repository

import "flightlist-service/internal/domain/entity"

// DefaultRoutes is the built-in India <-> Vietnam route graph
var DefaultRoutes = []entity.Route{
	{Origin: "New Delhi", Destination: "Hanoi", OriginCountry: "India", DestinationCountry: "Vietnam"},
	{Origin: "Hanoi", Destination: "New Delhi", OriginCountry: "Vietnam", DestinationCountry: "India"},
	{Origin: "New Delhi", Destination: "Ho Chi Minh City", OriginCountry: "India", DestinationCountry: "Vietnam"},
	{Origin: "Ho Chi Minh City", Destination: "New Delhi", OriginCountry: "Vietnam", DestinationCountry: "India"},
	{Origin: "Mumbai", Destination: "Hanoi", OriginCountry: "India", DestinationCountry: "Vietnam"},
	{Origin: "Hanoi", Destination: "Mumbai", OriginCountry: "Vietnam", DestinationCountry: "India"},
	{Origin: "Mumbai", Destination: "Ho Chi Minh City", OriginCountry: "India", DestinationCountry: "Vietnam"},
	{Origin: "Ho Chi Minh City", Destination: "Mumbai", OriginCountry: "Vietnam", DestinationCountry: "India"},
}

// DefaultLuggagePolicies is the built-in luggage policy table
var DefaultLuggagePolicies = []entity.AirlineLuggagePolicy{
	{
		Airline: "VietJet Air",
		CarryOn: entity.Allowance{Weight: "7kg", Free: true},
		Checked: entity.Allowance{Weight: "0kg", Free: false, Note: "Must purchase separately"},
		ExtraCheckedOptions: []entity.ExtraBaggageTier{
			{Weight: "20kg", WeightValue: 20, BeforeThreeHours: 2030, AfterThreeHours: 4060},
			{Weight: "30kg", WeightValue: 30, BeforeThreeHours: 3080, AfterThreeHours: 5180},
			{Weight: "40kg", WeightValue: 40, BeforeThreeHours: 4060, AfterThreeHours: 6160},
			{Weight: "50kg", WeightValue: 50, BeforeThreeHours: 5180, AfterThreeHours: 7210},
			{Weight: "60kg", WeightValue: 60, BeforeThreeHours: 6160, AfterThreeHours: 8210},
			{Weight: "70kg", WeightValue: 70, BeforeThreeHours: 7210, AfterThreeHours: 10160},
		},
	},
	{
		Airline: "Vietnam Airlines",
		CarryOn: entity.Allowance{Weight: "12kg", Free: true},
		Checked: entity.Allowance{Weight: "23kg", Free: true},
	},
	{
		Airline: "Air India",
		CarryOn: entity.Allowance{Weight: "7kg", Free: true},
		Checked: entity.Allowance{Weight: "25kg", Free: true},
	},
}

// DefaultPrecipitation holds average rainy days per month
var DefaultPrecipitation = []entity.CityPrecipitation{
	{City: "Hanoi", RainyDays: map[string]float64{
		"Jan": 1.9, "Feb": 2.2, "Mar": 4.6, "Apr": 6.7, "May": 12.2, "Jun": 14.4,
		"Jul": 16.3, "Aug": 17.2, "Sep": 12.6, "Oct": 8.0, "Nov": 4.2, "Dec": 2.0,
	}},
	{City: "Ho Chi Minh City", RainyDays: map[string]float64{
		"Jan": 0.9, "Feb": 0.6, "Mar": 1.6, "Apr": 4.3, "May": 11.7, "Jun": 15.9,
		"Jul": 16.7, "Aug": 15.7, "Sep": 16.6, "Oct": 16.5, "Nov": 8.4, "Dec": 2.9,
	}},
	{City: "Da Nang", RainyDays: map[string]float64{
		"Jan": 4.5, "Feb": 1.8, "Mar": 2.0, "Apr": 3.2, "May": 7.2, "Jun": 7.2,
		"Jul": 7.1, "Aug": 10.8, "Sep": 15.5, "Oct": 18.3, "Nov": 13.8, "Dec": 9.7,
	}},
	{City: "Phu Quoc", RainyDays: map[string]float64{
		"Jan": 2.0, "Feb": 2.3, "Mar": 5.2, "Apr": 9.7, "May": 15.8, "Jun": 19.6,
		"Jul": 21.3, "Aug": 21.6, "Sep": 20.6, "Oct": 19.4, "Nov": 11.0, "Dec": 3.9,
	}},
}
