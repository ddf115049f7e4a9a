package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/internal/domain/repository/mocks"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

func TestLoadInitialSuccess(t *testing.T) {
	provider := new(mocks.MockFlightProvider)
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 1}).
		Return(testPage(1, 3, testFlight("a", "2024-05-01", 100), testFlight("b", "2024-05-02", 200)), nil).Once()

	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)

	require.NoError(t, o.LoadInitial(context.Background()))

	state := store.State()
	assert.Equal(t, []string{"a", "b"}, uuids(state.Flights))
	assert.Equal(t, 30, state.TotalCount)
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasMore)
	assert.False(t, state.Loading)
	assert.False(t, state.LoadingMore)

	require.NoError(t, o.LoadInitial(context.Background()))
	provider.AssertExpectations(t)
}

func TestLoadInitialEmptyResult(t *testing.T) {
	provider := new(mocks.MockFlightProvider)
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 1}).
		Return(&entity.FlightPage{Data: []entity.Flight{}, Page: 1, TotalPages: 1, TotalItems: 0}, nil).Once()

	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)

	require.NoError(t, o.LoadInitial(context.Background()))

	state := store.State()
	assert.Empty(t, state.Flights)
	assert.False(t, state.HasMore)
	assert.False(t, state.Loading)
	assert.True(t, state.IsEmptyResult())

	started, err := o.ContinueIfAtEnd(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	provider.AssertNumberOfCalls(t, "FetchFlights", 1)
}

func TestLoadPageFailureStopsPagination(t *testing.T) {
	provider := new(mocks.MockFlightProvider)
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 1}).
		Return(testPage(1, 5, testFlight("a", "2024-05-01", 100)), nil).Once()
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 2}).
		Return(nil, repository.ErrMalformedResponse).Once()

	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	started, err := o.ContinueIfAtEnd(context.Background())
	assert.True(t, started)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNetworkFailure)

	state := store.State()
	assert.Equal(t, []string{"a"}, uuids(state.Flights))
	assert.Equal(t, 1, state.Page)
	assert.False(t, state.HasMore)
	assert.False(t, state.LoadingMore)
	assert.False(t, state.Loading)

	started, err = o.ContinueIfAtEnd(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	provider.AssertExpectations(t)
}

func TestContinueIfAtEndEmptyPage(t *testing.T) {
	provider := new(mocks.MockFlightProvider)
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 1}).
		Return(testPage(1, 3, testFlight("a", "2024-05-01", 100)), nil).Once()
	provider.On("FetchFlights", mock.Anything, entity.FlightQuery{Page: 2}).
		Return(&entity.FlightPage{Data: []entity.Flight{}, Page: 2, TotalPages: 3, TotalItems: 30}, nil).Once()

	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	started, err := o.ContinueIfAtEnd(context.Background())
	require.NoError(t, err)
	assert.True(t, started)

	state := store.State()
	assert.Equal(t, []string{"a"}, uuids(state.Flights))
	assert.Equal(t, 1, state.Page)
	assert.False(t, state.HasMore)
	assert.False(t, state.LoadingMore)
	assert.True(t, state.IsExhausted())

	started, err = o.ContinueIfAtEnd(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	provider.AssertExpectations(t)
}

func TestInitialFailureClearsLoading(t *testing.T) {
	provider := new(mocks.MockFlightProvider)
	provider.On("FetchFlights", mock.Anything, mock.Anything).Return(nil, repository.ErrNetworkFailure).Once()

	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)

	err := o.LoadInitial(context.Background())
	assert.ErrorIs(t, err, repository.ErrNetworkFailure)

	state := store.State()
	assert.False(t, state.Loading)
	assert.False(t, state.HasMore)
}

func TestContinueIfAtEndPaginates(t *testing.T) {
	provider := pagedProvider(3)
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	for want := 2; want <= 3; want++ {
		started, err := o.ContinueIfAtEnd(context.Background())
		require.NoError(t, err)
		require.True(t, started)
		assert.Equal(t, want, store.State().Page)
	}

	state := store.State()
	assert.False(t, state.HasMore)
	assert.True(t, state.IsExhausted())
	assert.Equal(t, []string{"-1", "-2", "-3"}, uuids(state.Flights))

	started, err := o.ContinueIfAtEnd(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	assert.EqualValues(t, 3, provider.calls.Load())
}

func TestContinueIfAtEndGuardIdempotence(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	provider := &fakeProvider{
		handle: func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			if q.Page == 1 {
				return testPage(1, 5, testFlight("a", "2024-05-01", 1)), nil
			}
			entered <- struct{}{}
			<-release
			return testPage(q.Page, 5, testFlight("b", "2024-05-02", 1)), nil
		},
	}
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := o.ContinueIfAtEnd(context.Background())
		done <- err
	}()
	<-entered

	for i := 0; i < 5; i++ {
		started, err := o.ContinueIfAtEnd(context.Background())
		require.NoError(t, err)
		assert.False(t, started)
	}
	assert.True(t, store.State().LoadingMore)

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 2, provider.calls.Load())
	assert.Equal(t, 2, store.State().Page)
}

func TestContinueIfAtEndConcurrentTriggers(t *testing.T) {
	provider := pagedProvider(10)
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = o.ContinueIfAtEnd(context.Background())
		}()
	}
	wg.Wait()

	// pages only ever advance by one and never repeat
	seen := map[int]bool{}
	for _, q := range provider.Queries() {
		require.False(t, seen[q.Page], "page %d fetched twice", q.Page)
		seen[q.Page] = true
	}
	state := store.State()
	assert.Len(t, state.Flights, state.Page)
}

func TestFiltersChangedDeferredDuringInitialLoad(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	provider := &fakeProvider{
		handle: func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			if q.Origin == "" {
				entered <- struct{}{}
				<-release
			}
			return testPage(1, 1, testFlight(q.Origin+"-1", "2024-05-01", 1)), nil
		},
	}
	scroller := &scrollCounter{}
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, scroller)

	done := make(chan error, 1)
	go func() { done <- o.LoadInitial(context.Background()) }()
	<-entered

	store.Dispatch(SetOrigin{City: "Mumbai"})
	require.NoError(t, o.FiltersChanged(context.Background()))
	store.Dispatch(SetDestination{City: "Hanoi"})
	require.NoError(t, o.FiltersChanged(context.Background()))
	assert.EqualValues(t, 1, provider.calls.Load())

	close(release)
	require.NoError(t, <-done)

	queries := provider.Queries()
	require.Len(t, queries, 2)
	assert.Equal(t, entity.FlightQuery{Page: 1, Origin: "Mumbai", Destination: "Hanoi"}, queries[1])
	assert.Equal(t, []string{"Mumbai-1"}, uuids(store.State().Flights))
	assert.EqualValues(t, 1, scroller.n.Load())
}

func TestFiltersChangedCancelsSupersededReload(t *testing.T) {
	entered := make(chan struct{}, 1)
	cancelled := make(chan error, 1)
	provider := &fakeProvider{
		handle: func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			if q.Origin == "Mumbai" {
				entered <- struct{}{}
				<-ctx.Done()
				cancelled <- ctx.Err()
				return nil, ctxError(ctx)
			}
			return testPage(1, 2, testFlight(q.Origin+"-1", "2024-05-01", 1)), nil
		},
	}
	scroller := &scrollCounter{}
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, scroller)
	require.NoError(t, o.LoadInitial(context.Background()))

	store.Dispatch(SetOrigin{City: "Mumbai"})
	done := make(chan error, 1)
	go func() { done <- o.FiltersChanged(context.Background()) }()
	<-entered

	store.Dispatch(SetOrigin{City: "Hanoi"})
	require.NoError(t, o.FiltersChanged(context.Background()))

	assert.ErrorIs(t, <-cancelled, context.Canceled)
	require.NoError(t, <-done, "superseded reload reports no error")

	state := store.State()
	assert.Equal(t, []string{"Hanoi-1"}, uuids(state.Flights))
	assert.True(t, state.HasMore)
	assert.False(t, state.Loading)
	assert.EqualValues(t, 2, scroller.n.Load())
}

func TestResetAndReloadDropsPendingPage(t *testing.T) {
	entered := make(chan struct{}, 1)
	provider := &fakeProvider{
		handle: func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			if q.Page == 2 {
				entered <- struct{}{}
				<-ctx.Done()
				return nil, ctxError(ctx)
			}
			return testPage(1, 4, testFlight("p1", "2024-05-01", 1)), nil
		},
	}
	store := NewStore(NewListState())
	o := newTestOrchestrator(store, provider, nil)
	require.NoError(t, o.LoadInitial(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := o.ContinueIfAtEnd(context.Background())
		done <- err
	}()
	<-entered

	require.NoError(t, o.ResetAndReload(context.Background()))
	require.NoError(t, <-done)

	state := store.State()
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasMore)
	assert.False(t, state.LoadingMore)
	assert.Equal(t, []string{"p1"}, uuids(state.Flights))
}

func TestFetchTimeoutIsNetworkFailure(t *testing.T) {
	provider := &fakeProvider{
		handle: func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			<-ctx.Done()
			return nil, ctxError(ctx)
		},
	}
	store := NewStore(NewListState())
	o := NewFetchOrchestrator(store, provider, nil, 20*time.Millisecond, logger.NewNopLogger(), metrics.NewNopMetrics())

	err := o.LoadInitial(context.Background())
	assert.ErrorIs(t, err, repository.ErrNetworkFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, store.State().Loading)
}

func TestClosedOrchestrator(t *testing.T) {
	provider := pagedProvider(1)
	o := newTestOrchestrator(NewStore(NewListState()), provider, nil)
	o.Close()
	o.Close()

	assert.True(t, errors.Is(o.LoadInitial(context.Background()), ErrSessionClosed))
	_, err := o.ContinueIfAtEnd(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, o.FiltersChanged(context.Background()), ErrSessionClosed)
	assert.Zero(t, provider.calls.Load())
}
