package usecase

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlist-service/internal/domain/entity"
)

func TestNewListStateDefaults(t *testing.T) {
	s := NewListState()

	assert.Empty(t, s.Flights)
	assert.NotNil(t, s.Flights)
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.HasMore)
	assert.True(t, s.Loading)
	assert.False(t, s.LoadingMore)
	assert.Equal(t, "20kg", s.Filters.BaggageWeight)
	assert.Equal(t, entity.BaggageAll, s.Filters.BaggageOption)
	assert.True(t, s.Trip.IsEmpty())
}

func TestEmptyResultNeedsZeroTotal(t *testing.T) {
	s := NewListState()
	assert.False(t, s.IsEmptyResult())

	s = Reduce(s, SetLoading{Loading: false})
	assert.True(t, s.IsEmptyResult())

	s = Reduce(s, SetTotalCount{Count: 12})
	assert.False(t, s.IsEmptyResult())
	assert.False(t, s.IsExhausted())
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(NewListState(), SetFlights{Flights: []entity.Flight{
		testFlight("a", "2024-05-01", 100),
		testFlight("b", "2024-05-02", 200),
	}})

	after := Reduce(before, AppendFlights{Flights: []entity.Flight{testFlight("a", "2024-05-01", 999)}})

	assert.Equal(t, 100, before.Flights[0].PriceINR)
	assert.Equal(t, 999, after.Flights[0].PriceINR)
}

func TestAppendFlightsMergesByUUID(t *testing.T) {
	state := Reduce(NewListState(), SetFlights{Flights: []entity.Flight{
		testFlight("a", "2024-05-01", 100),
		testFlight("b", "2024-05-02", 200),
	}})

	state = Reduce(state, AppendFlights{Flights: []entity.Flight{
		testFlight("c", "2024-05-03", 300),
		testFlight("a", "2024-05-01", 150),
		testFlight("c", "2024-05-03", 350),
	}})

	require.Len(t, state.Flights, 3)
	assert.Equal(t, []string{"a", "b", "c"}, uuids(state.Flights))
	assert.Equal(t, 150, state.Flights[0].PriceINR)
	assert.Equal(t, 350, state.Flights[2].PriceINR)
}

func TestAppendFlightsNeverDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	state := NewListState()

	for round := 0; round < 200; round++ {
		batch := make([]entity.Flight, rng.Intn(6))
		for i := range batch {
			batch[i] = testFlight(fmt.Sprintf("f%d", rng.Intn(25)), "2024-05-01", round)
		}
		state = Reduce(state, AppendFlights{Flights: batch})

		seen := map[string]bool{}
		for _, f := range state.Flights {
			require.False(t, seen[f.UUID], "duplicate uuid %s after round %d", f.UUID, round)
			seen[f.UUID] = true
		}
	}
}

func TestResetListKeepsTripAndModals(t *testing.T) {
	out := testFlight("o", "2024-05-01", 100)
	state := Reduce(NewListState(), SetFlights{Flights: []entity.Flight{out}})
	state = Reduce(state, SetPage{Page: 4})
	state = Reduce(state, SetHasMore{HasMore: false})
	state = Reduce(state, SelectFlight{Flight: out, Leg: entity.LegOutbound})
	state = Reduce(state, OpenLuggagePolicy{Airline: "VietJet Air"})

	state = Reduce(state, ResetList{})

	assert.Empty(t, state.Flights)
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasMore)
	require.NotNil(t, state.Trip.Outbound)
	assert.Equal(t, "o", state.Trip.Outbound.UUID)
	assert.True(t, state.LuggageModal.Visible)
}

func TestFilterTransitions(t *testing.T) {
	state := NewListState()
	state = Reduce(state, SetOrigin{City: "New Delhi"})
	state = Reduce(state, SetDestination{City: "Hanoi"})
	state = Reduce(state, SetBaggageOption{Option: entity.BaggageIncluded})
	state = Reduce(state, SetBaggageOption{Option: "bogus"})
	state = Reduce(state, SetBaggageWeight{Weight: "30kg"})
	state = Reduce(state, SetDrySeasonOnly{Enabled: true})
	state = Reduce(state, SetPriceUnder10k{Enabled: true})
	state = Reduce(state, ToggleSortByDate{})

	assert.Equal(t, Filters{
		Origin:        "New Delhi",
		Destination:   "Hanoi",
		BaggageOption: entity.BaggageIncluded,
		BaggageWeight: "30kg",
		DrySeasonOnly: true,
		PriceUnder10k: true,
		SortByDate:    true,
	}, state.Filters)

	state = Reduce(state, SwapLocations{})
	assert.Equal(t, "Hanoi", state.Filters.Origin)
	assert.Equal(t, "New Delhi", state.Filters.Destination)

	state = Reduce(state, ToggleSortByDate{})
	assert.False(t, state.Filters.SortByDate)
}

func TestSwapLocationsNeedsBothCities(t *testing.T) {
	state := Reduce(NewListState(), SetOrigin{City: "Mumbai"})
	state = Reduce(state, SwapLocations{})

	assert.Equal(t, "Mumbai", state.Filters.Origin)
	assert.Empty(t, state.Filters.Destination)
}

func TestSelectFlightDateOrdering(t *testing.T) {
	tests := []struct {
		name         string
		outbound     string
		ret          string
		selectLeg    entity.Leg
		selectDate   string
		wantOutbound bool
		wantReturn   bool
	}{
		{"outbound after return clears return", "", "2024-05-05", entity.LegOutbound, "2024-05-10", true, false},
		{"outbound before return keeps return", "", "2024-05-15", entity.LegOutbound, "2024-05-10", true, true},
		{"same day keeps return", "", "2024-05-10", entity.LegOutbound, "2024-05-10", true, true},
		{"return before outbound clears outbound", "2024-05-10", "", entity.LegReturn, "2024-05-01", false, true},
		{"return after outbound keeps outbound", "2024-05-10", "", entity.LegReturn, "2024-05-20", true, true},
		{"unparseable date clears nothing", "", "someday", entity.LegOutbound, "2024-05-10", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewListState()
			if tt.outbound != "" {
				state = Reduce(state, SelectFlight{Flight: testFlight("out", tt.outbound, 1), Leg: entity.LegOutbound})
			}
			if tt.ret != "" {
				state = Reduce(state, SelectFlight{Flight: testFlight("ret", tt.ret, 1), Leg: entity.LegReturn})
			}

			state = Reduce(state, SelectFlight{Flight: testFlight("new", tt.selectDate, 1), Leg: tt.selectLeg})

			assert.Equal(t, tt.wantOutbound, state.Trip.Outbound != nil, "outbound")
			assert.Equal(t, tt.wantReturn, state.Trip.Return != nil, "return")
			assert.Equal(t, "new", state.Trip.Get(tt.selectLeg).UUID)
		})
	}
}

func TestTripDateInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	state := NewListState()

	for i := 0; i < 500; i++ {
		leg := entity.LegOutbound
		if rng.Intn(2) == 1 {
			leg = entity.LegReturn
		}
		date := fmt.Sprintf("2024-05-%02d", rng.Intn(28)+1)
		state = Reduce(state, SelectFlight{Flight: testFlight(fmt.Sprint(i), date, 1), Leg: leg})

		if state.Trip.Outbound != nil && state.Trip.Return != nil {
			require.LessOrEqual(t, state.Trip.Outbound.Date, state.Trip.Return.Date)
		}
	}
}

func TestRemoveFlightAndModals(t *testing.T) {
	f := testFlight("x", "2024-06-01", 10)
	state := Reduce(NewListState(), SelectFlight{Flight: f, Leg: entity.LegReturn})
	state = Reduce(state, RemoveFlight{Leg: entity.LegReturn})
	assert.Nil(t, state.Trip.Return)

	state = Reduce(state, OpenRainInfo{Flight: f})
	require.NotNil(t, state.RainModal.Flight)
	assert.True(t, state.RainModal.Visible)
	state = Reduce(state, CloseRainInfo{})
	assert.False(t, state.RainModal.Visible)

	state = Reduce(state, OpenLuggagePolicy{Airline: "Air India"})
	assert.Equal(t, LuggageModal{Visible: true, Airline: "Air India"}, state.LuggageModal)
	state = Reduce(state, CloseLuggagePolicy{})
	assert.False(t, state.LuggageModal.Visible)
}

func TestReloadKeyIgnoresBaggageWeight(t *testing.T) {
	f := NewListState().Filters
	g := f
	g.BaggageWeight = "70kg"
	assert.Equal(t, f.reloadKey(), g.reloadKey())

	g.SortByDate = true
	assert.NotEqual(t, f.reloadKey(), g.reloadKey())
}

func uuids(flights []entity.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.UUID
	}
	return out
}
