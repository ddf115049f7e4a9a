package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/utils"
)

// Rain risk levels
const (
	RainRiskLow      = "Low"
	RainRiskModerate = "Moderate"
	RainRiskHigh     = "High"
)

// Month bar indicators
const (
	IndicatorSunny        = "sunny"
	IndicatorPartlyCloudy = "partly_cloudy"
	IndicatorRainy        = "rainy"
)

// MonthBar is one month of the rainy-days chart
type MonthBar struct {
	Month        string  `json:"month"`
	RainyDays    float64 `json:"rainyDays"`
	HeightRatio  float64 `json:"heightRatio"`
	CurrentMonth bool    `json:"currentMonth"`
	Indicator    string  `json:"indicator"`
}

// RainReport is the rain forecast sheet content for one flight
type RainReport struct {
	City            string     `json:"city"`
	MatchedCity     string     `json:"matchedCity"`
	RainProbability int        `json:"rainProbability"`
	Risk            string     `json:"risk"`
	ShowProbability bool       `json:"showProbability"`
	MaxRainyDays    float64    `json:"maxRainyDays"`
	Months          []MonthBar `json:"months"`
	Cities          []string   `json:"cities"`
}

// RainService builds rain reports from the precipitation table
type RainService struct {
	precipitationRepo repository.PrecipitationRepository
	now               func() time.Time
}

// NewRainService creates a new rain service. now defaults to time.Now.
func NewRainService(precipitationRepo repository.PrecipitationRepository, now func() time.Time) *RainService {
	if now == nil {
		now = time.Now
	}
	return &RainService{
		precipitationRepo: precipitationRepo,
		now:               now,
	}
}

// RiskLevel classifies a rain probability
func RiskLevel(probability int) string {
	switch {
	case probability < 25:
		return RainRiskLow
	case probability <= 50:
		return RainRiskModerate
	}
	return RainRiskHigh
}

// Report builds the rain report of flight's destination. A non-empty city
// shows that city's chart instead, the probability only applies to the
// flight's own destination.
func (s *RainService) Report(ctx context.Context, flight entity.Flight, city string) (*RainReport, error) {
	table, err := s.precipitationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list precipitation: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("precipitation table: %w", repository.ErrNotFound)
	}

	matched := closestCity(table, flight.Destination)
	shown := matched
	if city != "" {
		if findCity(table, city) == nil {
			return nil, fmt.Errorf("precipitation for %q: %w", city, repository.ErrNotFound)
		}
		shown = city
	}

	month := s.now().Month()
	if d, err := utils.ParseISODate(flight.Date); err == nil {
		month = d.Month()
	}

	maxDays := maxRainyDays(table)
	data := findCity(table, shown)
	report := &RainReport{
		City:            shown,
		MatchedCity:     matched,
		RainProbability: flight.RainProbability,
		Risk:            RiskLevel(flight.RainProbability),
		ShowProbability: shown == matched,
		MaxRainyDays:    maxDays,
		Months:          make([]MonthBar, 0, len(entity.Months)),
		Cities:          make([]string, 0, len(table)),
	}
	for _, c := range table {
		report.Cities = append(report.Cities, c.City)
	}
	for i, name := range entity.Months {
		days := data.ForMonth(time.Month(i + 1))
		ratio := 0.0
		if maxDays > 0 {
			ratio = days / maxDays
		}
		report.Months = append(report.Months, MonthBar{
			Month:        name,
			RainyDays:    days,
			HeightRatio:  ratio,
			CurrentMonth: time.Month(i+1) == month,
			Indicator:    indicator(ratio),
		})
	}
	return report, nil
}

// closestCity picks the exact table key, else the first city contained in
// destination (case-insensitive), else the first table city
func closestCity(table []entity.CityPrecipitation, destination string) string {
	if findCity(table, destination) != nil {
		return destination
	}
	lower := strings.ToLower(destination)
	for _, c := range table {
		if strings.Contains(lower, strings.ToLower(c.City)) {
			return c.City
		}
	}
	return table[0].City
}

func findCity(table []entity.CityPrecipitation, city string) *entity.CityPrecipitation {
	for i := range table {
		if table[i].City == city {
			return &table[i]
		}
	}
	return nil
}

// maxRainyDays is 1.1 times the table maximum, 1 for an all-zero table
func maxRainyDays(table []entity.CityPrecipitation) float64 {
	highest := 0.0
	for _, c := range table {
		for _, days := range c.RainyDays {
			highest = max(highest, days)
		}
	}
	if highest <= 0 {
		return 1
	}
	return highest * 1.1
}

func indicator(ratio float64) string {
	switch {
	case ratio < 0.33:
		return IndicatorSunny
	case ratio < 0.66:
		return IndicatorPartlyCloudy
	}
	return IndicatorRainy
}
