package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightlist-service/internal/domain/entity"
	"flightlist-service/internal/domain/repository"
	"flightlist-service/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const maxErrorBody = 512

// FlightAPIRepository queries the paginated flights endpoint over HTTP
type FlightAPIRepository struct {
	logger   logger.Logger
	baseURL  string
	client   *http.Client
	validate *validator.Validate
}

// NewFlightAPIRepository creates a new flight provider client. A nil client gets a 30s default.
func NewFlightAPIRepository(baseURL string, client *http.Client, logger logger.Logger) *FlightAPIRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &FlightAPIRepository{
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "?"),
		client:   client,
		validate: validator.New(),
	}
}

// flightResponse mirrors the wire format; pointers detect missing fields
type flightResponse struct {
	Data       *[]entity.Flight `json:"data"`
	Page       *int             `json:"page"`
	TotalPages *int             `json:"total_pages"`
	TotalItems *int             `json:"total_items"`
}

// FetchFlights requests one page of flights for query
func (r *FlightAPIRepository) FetchFlights(ctx context.Context, query entity.FlightQuery) (*entity.FlightPage, error) {
	endpoint, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid flights endpoint %q: %w", r.baseURL, err)
	}
	endpoint.RawQuery = query.Values().Encode()

	r.logger.Debug("Fetching flights", "url", endpoint.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: provider returned status %d: %s",
			repository.ErrNetworkFailure, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response flightResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedResponse, err)
	}

	page, err := r.toPage(response, query.Page)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Fetched flights",
		"page", page.Page,
		"count", len(page.Data),
		"totalPages", page.TotalPages,
		"totalItems", page.TotalItems)

	return page, nil
}

func (r *FlightAPIRepository) toPage(response flightResponse, requested int) (*entity.FlightPage, error) {
	switch {
	case response.Data == nil:
		return nil, fmt.Errorf("%w: missing data", repository.ErrMalformedResponse)
	case response.TotalPages == nil:
		return nil, fmt.Errorf("%w: missing total_pages", repository.ErrMalformedResponse)
	case response.TotalItems == nil:
		return nil, fmt.Errorf("%w: missing total_items", repository.ErrMalformedResponse)
	}

	for i := range *response.Data {
		if err := r.validate.Struct((*response.Data)[i]); err != nil {
			return nil, fmt.Errorf("%w: flight %d: %v", repository.ErrMalformedResponse, i, err)
		}
	}

	page := &entity.FlightPage{
		Data:       *response.Data,
		Page:       requested,
		TotalPages: *response.TotalPages,
		TotalItems: *response.TotalItems,
	}
	if response.Page != nil {
		page.Page = *response.Page
	}
	return page, nil
}
