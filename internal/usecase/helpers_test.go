package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

func testFlight(id, date string, price int) entity.Flight {
	return entity.Flight{
		UUID:        id,
		Date:        date,
		Origin:      "New Delhi",
		Destination: "Hanoi",
		Airline:     "VietJet Air",
		PriceINR:    price,
	}
}

func testPage(page, totalPages int, flights ...entity.Flight) *entity.FlightPage {
	return &entity.FlightPage{
		Data:       flights,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalPages * 10,
	}
}

// fakeProvider records queries and answers through handle
type fakeProvider struct {
	mu      sync.Mutex
	queries []entity.FlightQuery
	calls   atomic.Int32
	handle  func(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error)
}

func (p *fakeProvider) FetchFlights(ctx context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()
	return p.handle(ctx, q)
}

func (p *fakeProvider) Queries() []entity.FlightQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.FlightQuery, len(p.queries))
	copy(out, p.queries)
	return out
}

// pagedProvider serves totalPages pages of one flight each
func pagedProvider(totalPages int) *fakeProvider {
	return &fakeProvider{
		handle: func(_ context.Context, q entity.FlightQuery) (*entity.FlightPage, error) {
			id := fmt.Sprintf("%s-%d", q.Origin, q.Page)
			return testPage(q.Page, totalPages, testFlight(id, "2024-05-10", 5000)), nil
		},
	}
}

func ctxError(ctx context.Context) error {
	return fmt.Errorf("%w: %w", repository.ErrNetworkFailure, ctx.Err())
}

type scrollCounter struct{ n atomic.Int32 }

func (c *scrollCounter) ScrollToTop() { c.n.Add(1) }

func newTestOrchestrator(store *Store, provider repository.FlightProvider, scroller Scroller) *FetchOrchestrator {
	return NewFetchOrchestrator(store, provider, scroller, 0, logger.NewNopLogger(), metrics.NewNopMetrics())
}
