package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
	"data": [
		{"uuid": "f-1", "date": "2024-05-10", "origin": "New Delhi", "destination": "Hanoi",
		 "airline": "VietJet Air", "time": "10:30", "duration": "5h 10m", "flight_type": "Direct",
		 "price_inr": 9800, "origin_country": "India", "destination_country": "Vietnam",
		 "rain_probability": 35, "free_meal": true}
	],
	"page": 1,
	"total_pages": 3,
	"total_items": 41
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*FlightAPIRepository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFlightAPIRepository(srv.URL+"/api/flights", srv.Client(), logger.NewNopLogger()), srv
}

func TestFlightAPIRepository_FetchFlights(t *testing.T) {
	var gotQuery map[string][]string
	repo, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pageBody))
	})

	page, err := repo.FetchFlights(context.Background(), entity.FlightQuery{
		Page:        1,
		Origin:      "New Delhi",
		Destination: "Hanoi",
		Airline:     "VietJet Air",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"New Delhi"}, gotQuery["origin"])
	assert.Equal(t, []string{"Hanoi"}, gotQuery["destination"])
	assert.Equal(t, []string{"VietJet Air"}, gotQuery["airline"])
	assert.NotContains(t, gotQuery, "max_rain")

	require.Len(t, page.Data, 1)
	assert.Equal(t, "f-1", page.Data[0].UUID)
	assert.Equal(t, 9800, page.Data[0].PriceINR)
	assert.True(t, page.Data[0].HasFreeMeal())
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 41, page.TotalItems)
}

func TestFlightAPIRepository_EmptyPage(t *testing.T) {
	repo, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [], "page": 1, "total_pages": 1, "total_items": 0}`))
	})

	page, err := repo.FetchFlights(context.Background(), entity.FlightQuery{Page: 1})

	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalItems)
}

func TestFlightAPIRepository_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not found", status: http.StatusNotFound, body: "{}"},
		{name: "invalid json", status: http.StatusOK, body: "{not json", malformed: true},
		{name: "missing data", status: http.StatusOK, body: `{"page": 1, "total_pages": 1, "total_items": 0}`, malformed: true},
		{name: "missing totals", status: http.StatusOK, body: `{"data": []}`, malformed: true},
		{name: "flight without uuid", status: http.StatusOK,
			body:      `{"data": [{"date": "2024-05-10", "origin": "A", "destination": "B", "airline": "C"}], "total_pages": 1, "total_items": 1}`,
			malformed: true},
		{name: "rain out of range", status: http.StatusOK,
			body:      `{"data": [{"uuid": "x", "date": "2024-05-10", "origin": "A", "destination": "B", "airline": "C", "rain_probability": 140}], "total_pages": 1, "total_items": 1}`,
			malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			page, err := repo.FetchFlights(context.Background(), entity.FlightQuery{Page: 1})

			assert.Nil(t, page)
			require.Error(t, err)
			assert.ErrorIs(t, err, repository.ErrNetworkFailure)
			if tt.malformed {
				assert.ErrorIs(t, err, repository.ErrMalformedResponse)
			}
		})
	}
}

func TestFlightAPIRepository_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	repo, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := repo.FetchFlights(ctx, entity.FlightQuery{Page: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNetworkFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
