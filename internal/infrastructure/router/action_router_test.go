package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlist-service/internal/domain/entity"
	staticrepo "flightlist-service/internal/interface/repository"
	"flightlist-service/internal/usecase"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

type stubProvider struct{}

func (stubProvider) FetchFlights(_ context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
	return &entity.FlightPage{
		Data: []entity.Flight{{
			UUID: "f1", Date: "2024-05-10", Origin: "New Delhi", Destination: "Hanoi", Airline: "VietJet Air", PriceINR: 5000,
		}},
		Page:       q.Page,
		TotalPages: 3,
		TotalItems: 3,
	}, nil
}

func newSession(t *testing.T) *usecase.FlightListSession {
	t.Helper()
	log := logger.NewNopLogger()
	s := usecase.NewFlightListSession("router-test", usecase.SessionDeps{
		Provider:     stubProvider{},
		Luggage:      usecase.NewLuggageService(staticrepo.NewStaticLuggagePolicyRepository(nil), log),
		Rain:         usecase.NewRainService(staticrepo.NewStaticPrecipitationRepository(nil), nil),
		FetchTimeout: time.Second,
		Logger:       log,
		Metrics:      metrics.NewNopMetrics(),
	})
	t.Cleanup(s.Close)
	s.Start()
	s.Wait()
	return s
}

func dispatch(t *testing.T, r *ActionRouter, s *usecase.FlightListSession, actionType, payload string) error {
	t.Helper()
	err := usecase.DispatchAction(context.Background(), r, s, actionType, json.RawMessage(payload))
	s.Wait()
	return err
}

func TestDefaultRouterCoversEveryAction(t *testing.T) {
	r := NewDefaultActionRouter(logger.NewNopLogger())
	for _, actionType := range []string{
		usecase.ActionSetOrigin, usecase.ActionSetDestination, usecase.ActionSetBaggageOption,
		usecase.ActionSetBaggageWeight, usecase.ActionSetDrySeasonOnly, usecase.ActionSetPriceUnder10k,
		usecase.ActionToggleSortByDate, usecase.ActionSwapLocations, usecase.ActionSelectFlight,
		usecase.ActionRemoveFlight, usecase.ActionOpenLuggagePolicy, usecase.ActionCloseLuggagePolicy,
		usecase.ActionOpenRainInfo, usecase.ActionCloseRainInfo, usecase.ActionEndReached,
	} {
		assert.NotNil(t, r.GetHandler(actionType), actionType)
	}
	assert.Nil(t, r.GetHandler(usecase.ActionSetFlights))
	assert.Nil(t, r.GetHandler("FLY"))
}

func TestDispatchFilterActions(t *testing.T) {
	r := NewDefaultActionRouter(logger.NewNopLogger())
	s := newSession(t)

	require.NoError(t, dispatch(t, r, s, usecase.ActionSetOrigin, `{"city":"New Delhi"}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSetDestination, `{"city":"Hanoi"}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSetBaggageOption, `{"option":"included"}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSetBaggageWeight, `{"weight":"30kg"}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSetDrySeasonOnly, `{"enabled":true}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSetPriceUnder10k, `{"enabled":true}`))
	require.NoError(t, dispatch(t, r, s, usecase.ActionToggleSortByDate, ``))
	require.NoError(t, dispatch(t, r, s, usecase.ActionSwapLocations, `null`))

	assert.Equal(t, usecase.Filters{
		Origin:        "Hanoi",
		Destination:   "New Delhi",
		BaggageOption: entity.BaggageIncluded,
		BaggageWeight: "30kg",
		DrySeasonOnly: true,
		PriceUnder10k: true,
		SortByDate:    true,
	}, s.Snapshot().State.Filters)

	require.NoError(t, dispatch(t, r, s, usecase.ActionEndReached, ``))
	assert.Equal(t, 2, s.Snapshot().State.Page)
}

func TestDispatchTripActions(t *testing.T) {
	r := NewDefaultActionRouter(logger.NewNopLogger())
	s := newSession(t)
	flight := `{"uuid":"f1","date":"2024-05-10","origin":"New Delhi","destination":"Hanoi","airline":"VietJet Air","price_inr":5000}`

	require.NoError(t, dispatch(t, r, s, usecase.ActionSelectFlight, `{"leg":"outbound","flight":`+flight+`}`))
	assert.Equal(t, 5000, s.Snapshot().Trip.PriceINR)
	require.NoError(t, dispatch(t, r, s, usecase.ActionRemoveFlight, `{"leg":"Outbound"}`))
	assert.Zero(t, s.Snapshot().Trip.PriceINR)

	require.NoError(t, dispatch(t, r, s, usecase.ActionOpenRainInfo, `{"flight":`+flight+`}`))
	assert.True(t, s.Snapshot().State.RainModal.Visible)
	require.NoError(t, dispatch(t, r, s, usecase.ActionCloseRainInfo, ``))
	require.NoError(t, dispatch(t, r, s, usecase.ActionOpenLuggagePolicy, `{"airline":"Air India"}`))
	assert.Equal(t, "Air India", s.Snapshot().State.LuggageModal.Airline)
	require.NoError(t, dispatch(t, r, s, usecase.ActionCloseLuggagePolicy, ``))
	assert.False(t, s.Snapshot().State.LuggageModal.Visible)
}

func TestDispatchRejectsBadInput(t *testing.T) {
	r := NewDefaultActionRouter(logger.NewNopLogger())
	s := newSession(t)

	tests := []struct {
		name       string
		actionType string
		payload    string
		want       error
	}{
		{"unknown type", "FLY", ``, usecase.ErrUnknownAction},
		{"bad json", usecase.ActionSetOrigin, `{"city":`, usecase.ErrInvalidPayload},
		{"bad option", usecase.ActionSetBaggageOption, `{"option":"heavy"}`, usecase.ErrInvalidPayload},
		{"missing weight", usecase.ActionSetBaggageWeight, `{}`, usecase.ErrInvalidPayload},
		{"flight without uuid", usecase.ActionSelectFlight, `{"leg":"Return","flight":{"date":"2024-05-10"}}`, usecase.ErrInvalidPayload},
		{"bad leg", usecase.ActionRemoveFlight, `{"leg":"Sideways"}`, usecase.ErrUnknownLeg},
		{"missing airline", usecase.ActionOpenLuggagePolicy, `{}`, usecase.ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, dispatch(t, r, s, tt.actionType, tt.payload), tt.want)
		})
	}
}
