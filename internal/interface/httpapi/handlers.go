package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"flightlist-service/internal/domain/repository"
	"flightlist-service/internal/usecase"
	"flightlist-service/pkg/logger"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	sessions *usecase.SessionManager
	actions  usecase.ActionRouter
	routes   *usecase.RouteService
	luggage  *usecase.LuggageService
	hub      *Hub
	logger   logger.Logger
}

// NewHandler creates a new Handler instance. Sockets of a session are
// disconnected whenever the manager closes it.
func NewHandler(
	sessions *usecase.SessionManager,
	actions usecase.ActionRouter,
	routes *usecase.RouteService,
	luggage *usecase.LuggageService,
	hub *Hub,
	logger logger.Logger,
) *Handler {
	sessions.OnClose(hub.CloseSession)
	return &Handler{
		sessions: sessions,
		actions:  actions,
		routes:   routes,
		luggage:  luggage,
		hub:      hub,
		logger:   logger,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnknownAction),
		errors.Is(err, usecase.ErrInvalidPayload),
		errors.Is(err, usecase.ErrUnknownLeg):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, repository.ErrNetworkFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*usecase.FlightListSession, bool) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), "Session not found")
		return nil, false
	}
	session.Touch()
	return session, true
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// CloseSession handles DELETE /api/sessions/{id}
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.sessions.Close(id); err != nil {
		respondError(w, statusFor(err), "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DispatchAction handles POST /api/sessions/{id}/actions
func (h *Handler) DispatchAction(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var msg ActionMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg.Type == "" {
		respondError(w, http.StatusBadRequest, "Action type is required")
		return
	}

	if err := usecase.DispatchAction(r.Context(), h.actions, session, msg.Type, msg.Payload); err != nil {
		h.logger.Debug("Action rejected", "sessionID", session.ID(), "type", msg.Type, "error", err)
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// EndReached handles POST /api/sessions/{id}/end-reached
func (h *Handler) EndReached(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.EndReached()
	respondJSON(w, http.StatusAccepted, session.Snapshot())
}

// GetLuggagePolicy handles GET /api/sessions/{id}/luggage-policy
func (h *Handler) GetLuggagePolicy(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	policy, err := session.LuggagePolicy(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

// GetRainInfo handles GET /api/sessions/{id}/rain-info?city=
func (h *Handler) GetRainInfo(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	report, err := session.RainReport(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetCards handles GET /api/sessions/{id}/cards
func (h *Handler) GetCards(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Cards(r.Context()))
}

// SessionSocket handles GET /api/sessions/{id}/ws
func (h *Handler) SessionSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.hub.Serve(w, r, session)
}

// GetRoutes handles GET /api/routes
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.routes.Routes(r.Context())
	if err != nil {
		h.logger.Error("Failed to list routes", "error", err)
		respondError(w, statusFor(err), "Failed to list routes")
		return
	}
	respondJSON(w, http.StatusOK, routes)
}

// GetCities handles GET /api/routes/cities
func (h *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.routes.Cities(r.Context())
	if err != nil {
		h.logger.Error("Failed to list cities", "error", err)
		respondError(w, statusFor(err), "Failed to list cities")
		return
	}
	respondJSON(w, http.StatusOK, cities)
}

// GetDestinations handles GET /api/routes/destinations?origin=
func (h *Handler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.routes.Destinations(r.Context(), r.URL.Query().Get("origin"))
	if err != nil {
		h.logger.Error("Failed to list destinations", "error", err)
		respondError(w, statusFor(err), "Failed to list destinations")
		return
	}
	respondJSON(w, http.StatusOK, destinations)
}

// GetWeightOptions handles GET /api/luggage/weights
func (h *Handler) GetWeightOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.luggage.WeightOptions())
}

// GetLuggagePolicies handles GET /api/luggage/policies
func (h *Handler) GetLuggagePolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.luggage.Policies(r.Context())
	if err != nil {
		h.logger.Error("Failed to list luggage policies", "error", err)
		respondError(w, statusFor(err), "Failed to list luggage policies")
		return
	}
	respondJSON(w, http.StatusOK, policies)
}
