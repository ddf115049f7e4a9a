package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

// SessionSnapshot is the read-only projection handed to presentation clients
type SessionSnapshot struct {
	ID          string      `json:"id"`
	Version     uint64      `json:"version"`
	State       ListState   `json:"state"`
	Trip        TripSummary `json:"trip"`
	EmptyResult bool        `json:"emptyResult"`
	Exhausted   bool        `json:"exhausted"`
	LastError   string      `json:"lastError,omitempty"`
}

// SessionObserver receives presentation events of a session. Calls may
// arrive from several goroutines.
type SessionObserver interface {
	OnSnapshot(snapshot SessionSnapshot)
	OnScrollToTop()
	OnError(err error)
}

// SessionDeps are the collaborators shared by every session
type SessionDeps struct {
	Provider     repository.FlightProvider
	Luggage      *LuggageService
	Rain         *RainService
	FetchTimeout time.Duration
	Logger       logger.Logger
	Metrics      *metrics.Metrics
}

// FlightListSession is one screen's flight list: the store, its fetch
// orchestrator and the action surface presentation clients drive
type FlightListSession struct {
	id           string
	store        *Store
	orchestrator *FetchOrchestrator
	luggage      *LuggageService
	rain         *RainService
	logger       logger.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()

	mu         sync.Mutex
	observers  map[int]SessionObserver
	nextObs    int
	lastErr    error
	lastActive time.Time
	closed     bool
}

// NewFlightListSession creates a session with default state. Call Start to
// run the initial load.
func NewFlightListSession(id string, deps SessionDeps) *FlightListSession {
	ctx, cancel := context.WithCancel(context.Background())
	log := deps.Logger.With("sessionID", id)

	s := &FlightListSession{
		id:         id,
		store:      NewStore(NewListState()),
		luggage:    deps.Luggage,
		rain:       deps.Rain,
		logger:     log,
		ctx:        ctx,
		cancel:     cancel,
		observers:  make(map[int]SessionObserver),
		lastActive: time.Now(),
	}
	s.orchestrator = NewFetchOrchestrator(s.store, deps.Provider, s, deps.FetchTimeout, log, deps.Metrics)
	s.unsubscribe = s.store.Subscribe(func(ListState, uint64) {
		s.publish()
	})
	return s
}

// ID returns the session identifier
func (s *FlightListSession) ID() string { return s.id }

// Start runs the initial load in the background
func (s *FlightListSession) Start() {
	s.spawn("load_initial", s.orchestrator.LoadInitial)
}

// Wait blocks until every background fetch has finished
func (s *FlightListSession) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight fetches and discards the session state
func (s *FlightListSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.observers = make(map[int]SessionObserver)
	s.mu.Unlock()

	s.orchestrator.Close()
	s.cancel()
	s.unsubscribe()
	s.wg.Wait()
	s.logger.Info("Session closed")
}

// Observe registers o and returns a function that removes it
func (s *FlightListSession) Observe(o SessionObserver) (remove func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state with its derived values
func (s *FlightListSession) Snapshot() SessionSnapshot {
	state, trip, version := s.store.Snapshot()
	snapshot := SessionSnapshot{
		ID:          s.id,
		Version:     version,
		State:       state,
		Trip:        trip,
		EmptyResult: state.IsEmptyResult(),
		Exhausted:   state.IsExhausted(),
	}
	s.mu.Lock()
	if s.lastErr != nil {
		snapshot.LastError = s.lastErr.Error()
		snapshot.EmptyResult = false
	}
	s.mu.Unlock()
	return snapshot
}

// Touch records client activity
func (s *FlightListSession) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// IdleSince returns the time of the last client activity
func (s *FlightListSession) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// ScrollToTop forwards the orchestrator's scroll request to observers
func (s *FlightListSession) ScrollToTop() {
	for _, o := range s.observerList() {
		o.OnScrollToTop()
	}
}

func (s *FlightListSession) SetOrigin(city string) { s.applyFilter(SetOrigin{City: city}) }

func (s *FlightListSession) SetDestination(city string) {
	s.applyFilter(SetDestination{City: city})
}

// SetBaggageOption rejects values outside all/free/included
func (s *FlightListSession) SetBaggageOption(option entity.BaggageOption) error {
	if !option.Valid() {
		return fmt.Errorf("%w: baggage option %q", ErrInvalidPayload, option)
	}
	s.applyFilter(SetBaggageOption{Option: option})
	return nil
}

// SetBaggageWeight only changes displayed baggage prices and never reloads
func (s *FlightListSession) SetBaggageWeight(weight string) {
	s.applyFilter(SetBaggageWeight{Weight: weight})
}

func (s *FlightListSession) SetDrySeasonOnly(enabled bool) {
	s.applyFilter(SetDrySeasonOnly{Enabled: enabled})
}

func (s *FlightListSession) SetPriceUnder10k(enabled bool) {
	s.applyFilter(SetPriceUnder10k{Enabled: enabled})
}

func (s *FlightListSession) ToggleSortByDate() { s.applyFilter(ToggleSortByDate{}) }

// SwapLocations exchanges origin and destination with at most one reload
func (s *FlightListSession) SwapLocations() { s.applyFilter(SwapLocations{}) }

// SelectFlight sets the trip leg to flight
func (s *FlightListSession) SelectFlight(flight entity.Flight, leg entity.Leg) error {
	if leg != entity.LegOutbound && leg != entity.LegReturn {
		return fmt.Errorf("%w: %q", ErrUnknownLeg, leg)
	}
	s.store.Dispatch(SelectFlight{Flight: flight, Leg: leg})
	return nil
}

// RemoveFlight clears the trip leg
func (s *FlightListSession) RemoveFlight(leg entity.Leg) error {
	if leg != entity.LegOutbound && leg != entity.LegReturn {
		return fmt.Errorf("%w: %q", ErrUnknownLeg, leg)
	}
	s.store.Dispatch(RemoveFlight{Leg: leg})
	return nil
}

func (s *FlightListSession) OpenLuggagePolicy(airline string) {
	s.store.Dispatch(OpenLuggagePolicy{Airline: airline})
}

func (s *FlightListSession) CloseLuggagePolicy() { s.store.Dispatch(CloseLuggagePolicy{}) }

func (s *FlightListSession) OpenRainInfo(flight entity.Flight) {
	s.store.Dispatch(OpenRainInfo{Flight: flight})
}

func (s *FlightListSession) CloseRainInfo() { s.store.Dispatch(CloseRainInfo{}) }

// EndReached requests the next page in the background when the guards allow it
func (s *FlightListSession) EndReached() {
	s.spawn("continue_if_at_end", func(ctx context.Context) error {
		_, err := s.orchestrator.ContinueIfAtEnd(ctx)
		return err
	})
}

// LuggagePolicy returns the policy shown by the open luggage sheet
func (s *FlightListSession) LuggagePolicy(ctx context.Context) (*entity.AirlineLuggagePolicy, error) {
	modal := s.store.State().LuggageModal
	if !modal.Visible {
		return nil, fmt.Errorf("luggage policy sheet is closed: %w", repository.ErrNotFound)
	}
	return s.luggage.Policy(ctx, modal.Airline)
}

// RainReport returns the report shown by the open rain sheet. city overrides
// the chart city when not empty.
func (s *FlightListSession) RainReport(ctx context.Context, city string) (*RainReport, error) {
	modal := s.store.State().RainModal
	if !modal.Visible || modal.Flight == nil {
		return nil, fmt.Errorf("rain info sheet is closed: %w", repository.ErrNotFound)
	}
	return s.rain.Report(ctx, *modal.Flight, city)
}

// Cards renders the loaded flights with baggage pricing and selection marks
func (s *FlightListSession) Cards(ctx context.Context) FlightCardList {
	state, trip, version := s.store.Snapshot()
	return BuildFlightCards(ctx, s.luggage, state, trip, version)
}

// applyFilter commits a filter action and starts a reload when the result set changes
func (s *FlightListSession) applyFilter(action Action) {
	prev, next := s.store.Transact(func(ListState) []Action { return []Action{action} })
	if prev.Filters.reloadKey() == next.Filters.reloadKey() {
		return
	}

	s.logger.Debug("Filters changed", "action", action.Type(), "filters", next.Filters)
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	s.spawn("filters_changed", s.orchestrator.FiltersChanged)
}

// spawn runs fn on a tracked goroutine bound to the session context
func (s *FlightListSession) spawn(operation string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if err := fn(s.ctx); err != nil {
			s.reportError(operation, err)
		}
	}()
}

func (s *FlightListSession) reportError(operation string, err error) {
	s.mu.Lock()
	if s.closed || errors.Is(err, ErrSessionClosed) {
		s.mu.Unlock()
		return
	}
	s.lastErr = err
	s.mu.Unlock()

	s.logger.Warn("Session operation failed", "operation", operation, "error", err)
	for _, o := range s.observerList() {
		o.OnError(err)
	}
	s.publish()
}

func (s *FlightListSession) publish() {
	observers := s.observerList()
	if len(observers) == 0 {
		return
	}
	snapshot := s.Snapshot()
	for _, o := range observers {
		o.OnSnapshot(snapshot)
	}
}

func (s *FlightListSession) observerList() []SessionObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SessionObserver, 0, len(s.observers))
	for _, o := range s.observers {
		out = append(out, o)
	}
	return out
}
