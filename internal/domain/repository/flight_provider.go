package repository

import (
	"context"
	"errors"
	"fmt"

	"flightlist-service/internal/domain/entity"
)

var (
	// ErrNetworkFailure covers rejected requests, timeouts and non-2xx responses
	ErrNetworkFailure = errors.New("flight provider request failed")
	// ErrMalformedResponse is propagated like a network failure
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrNetworkFailure)
)

// FlightProvider defines the paginated flight query endpoint
type FlightProvider interface {
	FetchFlights(ctx context.Context, query entity.FlightQuery) (*entity.FlightPage, error)
}
