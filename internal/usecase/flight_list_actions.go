package usecase

import "flightlist-service/internal/domain/entity"

// Action is one of the closed set of flight list transitions
type Action interface {
	// Type returns the wire name of the transition
	Type() string
}

// Transition names
const (
	ActionSetFlights         = "SET_FLIGHTS"
	ActionAppendFlights      = "APPEND_FLIGHTS"
	ActionSetTotalCount      = "SET_TOTAL_COUNT"
	ActionSetLoading         = "SET_LOADING"
	ActionSetLoadingMore     = "SET_LOADING_MORE"
	ActionSetPage            = "SET_PAGE"
	ActionSetHasMore         = "SET_HAS_MORE"
	ActionSetOrigin          = "SET_ORIGIN"
	ActionSetDestination     = "SET_DESTINATION"
	ActionSetBaggageOption   = "SET_BAGGAGE_OPTION"
	ActionSetBaggageWeight   = "SET_BAGGAGE_WEIGHT"
	ActionSetDrySeasonOnly   = "SET_DRY_SEASON_ONLY"
	ActionSetPriceUnder10k   = "SET_PRICE_UNDER_10K"
	ActionToggleSortByDate   = "TOGGLE_SORT_BY_DATE"
	ActionSwapLocations      = "SWAP_LOCATIONS"
	ActionSelectFlight       = "SELECT_FLIGHT"
	ActionRemoveFlight       = "REMOVE_FLIGHT"
	ActionOpenLuggagePolicy  = "OPEN_LUGGAGE_POLICY"
	ActionCloseLuggagePolicy = "CLOSE_LUGGAGE_POLICY"
	ActionOpenRainInfo       = "OPEN_RAIN_INFO"
	ActionCloseRainInfo      = "CLOSE_RAIN_INFO"
	ActionResetList          = "RESET_LIST"
)

type SetFlights struct{ Flights []entity.Flight }
type AppendFlights struct{ Flights []entity.Flight }
type SetTotalCount struct{ Count int }
type SetLoading struct{ Loading bool }
type SetLoadingMore struct{ LoadingMore bool }
type SetPage struct{ Page int }
type SetHasMore struct{ HasMore bool }
type SetOrigin struct{ City string }
type SetDestination struct{ City string }
type SetBaggageOption struct{ Option entity.BaggageOption }
type SetBaggageWeight struct{ Weight string }
type SetDrySeasonOnly struct{ Enabled bool }
type SetPriceUnder10k struct{ Enabled bool }
type ToggleSortByDate struct{}

// SwapLocations exchanges origin and destination in a single transition
type SwapLocations struct{}

// SelectFlight sets one leg of the trip, clearing the other leg when the
// itinerary would otherwise return before it departs
type SelectFlight struct {
	Flight entity.Flight
	Leg    entity.Leg
}

type RemoveFlight struct{ Leg entity.Leg }
type OpenLuggagePolicy struct{ Airline string }
type CloseLuggagePolicy struct{}
type OpenRainInfo struct{ Flight entity.Flight }
type CloseRainInfo struct{}

// ResetList empties the list before a fresh filtered fetch. Trip and modals are untouched.
type ResetList struct{}

func (SetFlights) Type() string         { return ActionSetFlights }
func (AppendFlights) Type() string      { return ActionAppendFlights }
func (SetTotalCount) Type() string      { return ActionSetTotalCount }
func (SetLoading) Type() string         { return ActionSetLoading }
func (SetLoadingMore) Type() string     { return ActionSetLoadingMore }
func (SetPage) Type() string            { return ActionSetPage }
func (SetHasMore) Type() string         { return ActionSetHasMore }
func (SetOrigin) Type() string          { return ActionSetOrigin }
func (SetDestination) Type() string     { return ActionSetDestination }
func (SetBaggageOption) Type() string   { return ActionSetBaggageOption }
func (SetBaggageWeight) Type() string   { return ActionSetBaggageWeight }
func (SetDrySeasonOnly) Type() string   { return ActionSetDrySeasonOnly }
func (SetPriceUnder10k) Type() string   { return ActionSetPriceUnder10k }
func (ToggleSortByDate) Type() string   { return ActionToggleSortByDate }
func (SwapLocations) Type() string      { return ActionSwapLocations }
func (SelectFlight) Type() string       { return ActionSelectFlight }
func (RemoveFlight) Type() string       { return ActionRemoveFlight }
func (OpenLuggagePolicy) Type() string  { return ActionOpenLuggagePolicy }
func (CloseLuggagePolicy) Type() string { return ActionCloseLuggagePolicy }
func (OpenRainInfo) Type() string       { return ActionOpenRainInfo }
func (CloseRainInfo) Type() string      { return ActionCloseRainInfo }
func (ResetList) Type() string          { return ActionResetList }
