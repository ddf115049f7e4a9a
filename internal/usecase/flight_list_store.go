package usecase

import (
	"sync"

	"flightlist-service/internal/domain/entity"
)

// Listener receives every committed state together with its version.
// Listeners run outside the store lock and may be called concurrently, so
// they must use the version to drop snapshots older than one already seen.
type Listener func(state ListState, version uint64)

// Store holds a ListState and applies actions to it atomically
type Store struct {
	mu        sync.Mutex
	state     ListState
	version   uint64
	listeners map[int]Listener
	nextID    int

	tripOutbound *entity.Flight
	tripReturn   *entity.Flight
	tripSummary  TripSummary
}

// NewStore creates a store seeded with initial
func NewStore(initial ListState) *Store {
	s := &Store{
		state:     initial.clone(),
		listeners: make(map[int]Listener),
	}
	s.tripSummary = DeriveTrip(s.state.Trip)
	s.tripOutbound, s.tripReturn = s.state.Trip.Outbound, s.state.Trip.Return
	return s
}

// Dispatch applies actions in order as a single transition and returns the new state
func (s *Store) Dispatch(actions ...Action) ListState {
	_, next := s.Transact(func(ListState) []Action { return actions })
	return next
}

// Transact runs decide against the current state and applies the actions it
// returns without releasing the lock in between, so a check and the mark that
// depends on it cannot interleave with another caller. decide must not call
// back into the store.
func (s *Store) Transact(decide func(current ListState) []Action) (prev, next ListState) {
	s.mu.Lock()
	prev = s.state
	actions := decide(prev.clone())
	if len(actions) == 0 {
		s.mu.Unlock()
		return prev.clone(), prev.clone()
	}

	next = prev
	for _, action := range actions {
		next = Reduce(next, action)
	}
	s.state = next
	s.version++
	version := s.version
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.clone(), version)
	}
	return prev.clone(), next.clone()
}

// State returns a copy of the current state
func (s *Store) State() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Version returns the number of committed transitions
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns the state, its derived trip summary and version read together
func (s *Store) Snapshot() (ListState, TripSummary, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone(), s.tripLocked(), s.version
}

// Trip returns the derived summary of the current trip selection.
// The summary is recomputed only when a leg changes.
func (s *Store) Trip() TripSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tripLocked()
}

func (s *Store) tripLocked() TripSummary {
	trip := s.state.Trip
	if trip.Outbound != s.tripOutbound || trip.Return != s.tripReturn {
		s.tripSummary = DeriveTrip(trip)
		s.tripOutbound, s.tripReturn = trip.Outbound, trip.Return
	}
	return s.tripSummary
}

// Subscribe registers l and returns a function that removes it
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
