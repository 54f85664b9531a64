package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avernet/stockpulse/internal/api/handlers"
	"github.com/avernet/stockpulse/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(stockHandler *handlers.StockHandler, jobsHandler *handlers.JobsHandler, hub *Hub, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Live score stream
	r.HandleFunc("/api/stream", hub.ServeWS).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Stock endpoints
	api.HandleFunc("/stocks", stockHandler.ListStocks).Methods("GET")
	api.HandleFunc("/stocks/{symbol}/score", stockHandler.GetScore).Methods("GET")
	api.HandleFunc("/stocks/{symbol}/history", stockHandler.GetHistory).Methods("GET")

	// Scoring configuration
	api.HandleFunc("/scoring/config", stockHandler.GetScoringConfig).Methods("GET")

	// Refresh job endpoints
	api.HandleFunc("/refresh/stats", jobsHandler.GetStats).Methods("GET")
	api.HandleFunc("/refresh/run", jobsHandler.TriggerRefresh).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "stockpulse-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
