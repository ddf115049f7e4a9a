package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"flightlist-service/internal/domain/entity"
)

// ActionEndReached is accepted alongside the store transitions and runs continueIfAtEnd
const ActionEndReached = "END_REACHED"

// ActionHandler defines the interface for wire action handlers
type ActionHandler interface {
	// CanHandle determines if this handler accepts the given action type
	CanHandle(actionType string) bool

	// Handle decodes payload and applies it to the session
	Handle(ctx context.Context, session *FlightListSession, payload json.RawMessage) error
}

// ActionRouter routes wire actions to the appropriate handler by type
type ActionRouter interface {
	// Register registers a handler
	Register(handler ActionHandler)

	// GetHandler returns the handler for actionType, nil when none accepts it
	GetHandler(actionType string) ActionHandler
}

var payloadValidator = validator.New()

// SessionActionAdapter adapts a typed session call to ActionHandler
type SessionActionAdapter[P any] struct {
	name  string
	types []string
	apply func(ctx context.Context, session *FlightListSession, payload P) error
}

// NewSessionActionAdapter creates an adapter for the given action types
func NewSessionActionAdapter[P any](
	name string,
	types []string,
	apply func(ctx context.Context, session *FlightListSession, payload P) error,
) *SessionActionAdapter[P] {
	return &SessionActionAdapter[P]{name: name, types: types, apply: apply}
}

// CanHandle checks if this adapter serves actionType
func (a *SessionActionAdapter[P]) CanHandle(actionType string) bool {
	for _, t := range a.types {
		if t == actionType {
			return true
		}
	}
	return false
}

// Handle decodes and validates the payload then applies it
func (a *SessionActionAdapter[P]) Handle(ctx context.Context, session *FlightListSession, payload json.RawMessage) error {
	var p P
	if len(bytes.TrimSpace(payload)) > 0 && !bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if err := payloadValidator.Struct(p); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return a.apply(ctx, session, p)
}

// String names the adapter in logs
func (a *SessionActionAdapter[P]) String() string { return a.name }

// Payloads accepted on the wire
type (
	CityPayload struct {
		City string `json:"city"`
	}
	BaggageOptionPayload struct {
		Option entity.BaggageOption `json:"option" validate:"required,oneof=all free included"`
	}
	BaggageWeightPayload struct {
		Weight string `json:"weight" validate:"required"`
	}
	TogglePayload struct {
		Enabled bool `json:"enabled"`
	}
	SelectFlightPayload struct {
		Flight entity.Flight `json:"flight"`
		Leg    string        `json:"leg" validate:"required"`
	}
	LegPayload struct {
		Leg string `json:"leg" validate:"required"`
	}
	AirlinePayload struct {
		Airline string `json:"airline" validate:"required"`
	}
	FlightPayload struct {
		Flight entity.Flight `json:"flight"`
	}
	NoPayload struct{}
)

// DefaultActionHandlers returns handlers for the full presentation action surface
func DefaultActionHandlers() []ActionHandler {
	return []ActionHandler{
		NewSessionActionAdapter("origin", []string{ActionSetOrigin},
			func(_ context.Context, s *FlightListSession, p CityPayload) error {
				s.SetOrigin(p.City)
				return nil
			}),
		NewSessionActionAdapter("destination", []string{ActionSetDestination},
			func(_ context.Context, s *FlightListSession, p CityPayload) error {
				s.SetDestination(p.City)
				return nil
			}),
		NewSessionActionAdapter("baggage_option", []string{ActionSetBaggageOption},
			func(_ context.Context, s *FlightListSession, p BaggageOptionPayload) error {
				return s.SetBaggageOption(p.Option)
			}),
		NewSessionActionAdapter("baggage_weight", []string{ActionSetBaggageWeight},
			func(_ context.Context, s *FlightListSession, p BaggageWeightPayload) error {
				s.SetBaggageWeight(p.Weight)
				return nil
			}),
		NewSessionActionAdapter("dry_season", []string{ActionSetDrySeasonOnly},
			func(_ context.Context, s *FlightListSession, p TogglePayload) error {
				s.SetDrySeasonOnly(p.Enabled)
				return nil
			}),
		NewSessionActionAdapter("price_under_10k", []string{ActionSetPriceUnder10k},
			func(_ context.Context, s *FlightListSession, p TogglePayload) error {
				s.SetPriceUnder10k(p.Enabled)
				return nil
			}),
		NewSessionActionAdapter("sort_by_date", []string{ActionToggleSortByDate},
			func(_ context.Context, s *FlightListSession, _ NoPayload) error {
				s.ToggleSortByDate()
				return nil
			}),
		NewSessionActionAdapter("swap_locations", []string{ActionSwapLocations},
			func(_ context.Context, s *FlightListSession, _ NoPayload) error {
				s.SwapLocations()
				return nil
			}),
		NewSessionActionAdapter("select_flight", []string{ActionSelectFlight},
			func(_ context.Context, s *FlightListSession, p SelectFlightPayload) error {
				leg, err := entity.ParseLeg(p.Leg)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrUnknownLeg, err)
				}
				return s.SelectFlight(p.Flight, leg)
			}),
		NewSessionActionAdapter("remove_flight", []string{ActionRemoveFlight},
			func(_ context.Context, s *FlightListSession, p LegPayload) error {
				leg, err := entity.ParseLeg(p.Leg)
				if err != nil {
					return fmt.Errorf("%w: %v", ErrUnknownLeg, err)
				}
				return s.RemoveFlight(leg)
			}),
		NewSessionActionAdapter("open_luggage_policy", []string{ActionOpenLuggagePolicy},
			func(_ context.Context, s *FlightListSession, p AirlinePayload) error {
				s.OpenLuggagePolicy(p.Airline)
				return nil
			}),
		NewSessionActionAdapter("close_luggage_policy", []string{ActionCloseLuggagePolicy},
			func(_ context.Context, s *FlightListSession, _ NoPayload) error {
				s.CloseLuggagePolicy()
				return nil
			}),
		NewSessionActionAdapter("open_rain_info", []string{ActionOpenRainInfo},
			func(_ context.Context, s *FlightListSession, p FlightPayload) error {
				s.OpenRainInfo(p.Flight)
				return nil
			}),
		NewSessionActionAdapter("close_rain_info", []string{ActionCloseRainInfo},
			func(_ context.Context, s *FlightListSession, _ NoPayload) error {
				s.CloseRainInfo()
				return nil
			}),
		NewSessionActionAdapter("end_reached", []string{ActionEndReached},
			func(_ context.Context, s *FlightListSession, _ NoPayload) error {
				s.EndReached()
				return nil
			}),
	}
}

// DispatchAction routes a wire action through router and applies it to session
func DispatchAction(ctx context.Context, router ActionRouter, session *FlightListSession, actionType string, payload json.RawMessage) error {
	handler := router.GetHandler(actionType)
	if handler == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAction, actionType)
	}
	session.Touch()
	return handler.Handle(ctx, session, payload)
}
