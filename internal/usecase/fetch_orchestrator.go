package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

// Scroller is asked to move the presented list back to its first row
type Scroller interface {
	ScrollToTop()
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func()

// ScrollToTop calls f
func (f ScrollerFunc) ScrollToTop() { f() }

// fetchRequest is a page fetch that has already been marked in the store
type fetchRequest struct {
	page       int
	kind       string
	generation uint64
	genCtx     context.Context
	filters    Filters
}

// FetchOrchestrator sequences provider fetches against a Store. Every
// check-and-mark of the loading flags happens inside one store transaction
// while o.mu is held. Lock order is o.mu then the store lock.
type FetchOrchestrator struct {
	store    *Store
	provider repository.FlightProvider
	scroller Scroller
	timeout  time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics

	mu             sync.Mutex
	closeAll       context.CancelFunc
	baseCtx        context.Context
	generation     uint64
	genCtx         context.Context
	cancelGen      context.CancelFunc
	initialStarted bool
	initialDone    bool
	pendingReload  bool
	closed         bool
}

// NewFetchOrchestrator creates a new fetch orchestrator. A zero timeout
// leaves requests bounded only by the caller's context.
func NewFetchOrchestrator(
	store *Store,
	provider repository.FlightProvider,
	scroller Scroller,
	timeout time.Duration,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FetchOrchestrator {
	baseCtx, closeAll := context.WithCancel(context.Background())
	genCtx, cancelGen := context.WithCancel(baseCtx)
	return &FetchOrchestrator{
		store:     store,
		provider:  provider,
		scroller:  scroller,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
		baseCtx:   baseCtx,
		closeAll:  closeAll,
		genCtx:    genCtx,
		cancelGen: cancelGen,
	}
}

// LoadInitial performs the first page-1 load of the session. Filter changes
// reported before it finishes are folded into a single reload afterwards.
// Calls after the first are no-ops.
func (o *FetchOrchestrator) LoadInitial(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrSessionClosed
	}
	if o.initialStarted {
		o.mu.Unlock()
		return nil
	}
	o.initialStarted = true
	// the initial fetch reads the filters as they are now
	o.pendingReload = false
	req := o.startLocked(FirstPage, metrics.KindInitial)
	o.mu.Unlock()

	err := o.execute(ctx, req)

	o.mu.Lock()
	o.initialDone = true
	if !o.pendingReload || o.closed {
		o.mu.Unlock()
		return err
	}
	o.pendingReload = false
	o.logger.Info("Running reload deferred during initial load")
	reload := o.resetLocked()
	o.mu.Unlock()

	o.scrollToTop()
	return o.execute(ctx, reload)
}

// FiltersChanged reacts to a change of any reload-relevant filter. Before the
// initial load has completed the reload is deferred, afterwards any fetch of
// the superseded filters is cancelled and page 1 is reloaded.
func (o *FetchOrchestrator) FiltersChanged(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrSessionClosed
	}
	if !o.initialDone {
		o.pendingReload = true
		o.mu.Unlock()
		return nil
	}
	req := o.resetLocked()
	o.mu.Unlock()

	o.scrollToTop()
	return o.execute(ctx, req)
}

// ResetAndReload empties the list, scrolls to the top and loads page 1
func (o *FetchOrchestrator) ResetAndReload(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrSessionClosed
	}
	req := o.resetLocked()
	o.mu.Unlock()

	o.scrollToTop()
	return o.execute(ctx, req)
}

// ContinueIfAtEnd loads the next page unless a fetch is already running or
// the list is exhausted. started is false when the call was a no-op.
func (o *FetchOrchestrator) ContinueIfAtEnd(ctx context.Context) (started bool, err error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false, ErrSessionClosed
	}

	next := 0
	_, state := o.store.Transact(func(current ListState) []Action {
		if current.LoadingMore || !current.HasMore || current.Loading {
			return nil
		}
		next = current.Page + 1
		return []Action{SetLoadingMore{LoadingMore: true}}
	})
	if next == 0 {
		o.mu.Unlock()
		return false, nil
	}
	req := fetchRequest{
		page:       next,
		kind:       metrics.KindPage,
		generation: o.generation,
		genCtx:     o.genCtx,
		filters:    state.Filters,
	}
	o.mu.Unlock()

	return true, o.execute(ctx, req)
}

// LoadPage marks the matching loading flag and fetches page without any guard
func (o *FetchOrchestrator) LoadPage(ctx context.Context, page int) error {
	if page < FirstPage {
		return fmt.Errorf("invalid page %d", page)
	}
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrSessionClosed
	}
	kind := metrics.KindPage
	if page == FirstPage {
		kind = metrics.KindReload
	}
	req := o.startLocked(page, kind)
	o.mu.Unlock()

	return o.execute(ctx, req)
}

// Close cancels every in-flight fetch. Results arriving later are dropped.
func (o *FetchOrchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.cancelGen()
	o.closeAll()
}

// startLocked marks the loading flag for page together with extra actions
// in one transition. o.mu must be held.
func (o *FetchOrchestrator) startLocked(page int, kind string, extra ...Action) fetchRequest {
	var mark Action = SetLoading{Loading: true}
	if page > FirstPage {
		mark = SetLoadingMore{LoadingMore: true}
	}
	actions := append(extra, mark)
	_, state := o.store.Transact(func(ListState) []Action { return actions })

	return fetchRequest{
		page:       page,
		kind:       kind,
		generation: o.generation,
		genCtx:     o.genCtx,
		filters:    state.Filters,
	}
}

// resetLocked supersedes the current generation and starts its page-1 fetch.
// o.mu must be held.
func (o *FetchOrchestrator) resetLocked() fetchRequest {
	o.cancelGen()
	o.generation++
	o.genCtx, o.cancelGen = context.WithCancel(o.baseCtx)

	return o.startLocked(FirstPage, metrics.KindReload,
		ResetList{},
		SetLoadingMore{LoadingMore: false},
	)
}

func (o *FetchOrchestrator) scrollToTop() {
	if o.scroller != nil {
		o.scroller.ScrollToTop()
	}
}

// execute runs a marked fetch and applies its outcome if the request still
// belongs to the current generation
func (o *FetchOrchestrator) execute(ctx context.Context, req fetchRequest) error {
	var (
		reqCtx context.Context
		cancel context.CancelFunc
	)
	if o.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, o.timeout)
	} else {
		reqCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()
	stop := context.AfterFunc(req.genCtx, cancel)
	defer stop()

	query := BuildFlightQuery(req.filters, req.page)
	o.logger.Debug("Fetching flight page",
		"page", req.page,
		"kind", req.kind,
		"query", query.Values().Encode())

	start := time.Now()
	result, err := o.provider.FetchFlights(reqCtx, query)
	o.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err == nil && result == nil {
		err = repository.ErrMalformedResponse
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if req.generation != o.generation || o.closed {
		o.metrics.FetchesTotal.WithLabelValues(req.kind, metrics.OutcomeSuperseded).Inc()
		o.logger.Debug("Discarding superseded flight page",
			"page", req.page,
			"generation", req.generation,
			"current", o.generation)
		return nil
	}

	release := []Action{
		SetLoading{Loading: false},
		SetLoadingMore{LoadingMore: false},
	}

	if err != nil {
		o.metrics.FetchesTotal.WithLabelValues(req.kind, metrics.OutcomeFailure).Inc()
		o.metrics.ErrorsCount.WithLabelValues("fetch_flights").Inc()
		o.logger.Error("Failed to fetch flight page",
			"page", req.page,
			"kind", req.kind,
			"malformed", errors.Is(err, repository.ErrMalformedResponse),
			"error", err)
		o.store.Dispatch(append([]Action{SetHasMore{HasMore: false}}, release...)...)
		return fmt.Errorf("failed to load page %d: %w", req.page, err)
	}

	if len(result.Data) == 0 {
		o.metrics.FetchesTotal.WithLabelValues(req.kind, metrics.OutcomeEmpty).Inc()
		o.logger.Info("Flight page is empty", "page", req.page, "totalItems", result.TotalItems)
		actions := []Action{
			SetTotalCount{Count: result.TotalItems},
			SetHasMore{HasMore: false},
		}
		if req.page == FirstPage {
			actions = append(actions, SetFlights{})
		}
		o.store.Dispatch(append(actions, release...)...)
		return nil
	}

	var load Action = AppendFlights{Flights: result.Data}
	if req.page == FirstPage {
		load = SetFlights{Flights: result.Data}
	}
	hasMore := req.page < result.TotalPages
	o.store.Dispatch(append([]Action{
		load,
		SetTotalCount{Count: result.TotalItems},
		SetPage{Page: req.page},
		SetHasMore{HasMore: hasMore},
	}, release...)...)

	o.metrics.FetchesTotal.WithLabelValues(req.kind, metrics.OutcomeSuccess).Inc()
	o.metrics.FlightsLoaded.Add(float64(len(result.Data)))
	o.logger.Info("Loaded flight page",
		"page", req.page,
		"kind", req.kind,
		"count", len(result.Data),
		"totalPages", result.TotalPages,
		"hasMore", hasMore)
	return nil
}
