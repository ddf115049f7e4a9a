package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *Handler, metrics http.Handler, allowedOrigin string) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware(allowedOrigin))

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Sessions
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.CloseSession).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/actions", h.DispatchAction).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/end-reached", h.EndReached).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/luggage-policy", h.GetLuggagePolicy).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/rain-info", h.GetRainInfo).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/cards", h.GetCards).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for snapshot pushes
	api.HandleFunc("/sessions/{id}/ws", h.SessionSocket).Methods(http.MethodGet)

	// Reference data
	api.HandleFunc("/routes", h.GetRoutes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/routes/cities", h.GetCities).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/routes/destinations", h.GetDestinations).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/luggage/weights", h.GetWeightOptions).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/luggage/policies", h.GetLuggagePolicies).Methods(http.MethodGet, http.MethodOptions)

	// Health check and metrics
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	return r
}

func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
