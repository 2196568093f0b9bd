package handler

import (
	"encoding/json"
	"net/http"

	"github.com/contactform/backend/internal/repository"
)

// Handler serves the liveness endpoints and the CORS wrapper.
type Handler struct {
	db            repository.DB
	allowedOrigin string
}

// New creates a Handler. allowedOrigin is the only origin granted CORS access.
func New(db repository.DB, allowedOrigin string) *Handler {
	return &Handler{db: db, allowedOrigin: allowedOrigin}
}

// CORS answers preflight requests and adds CORS headers for the allowed origin.
// Requests from any other origin pass through without CORS headers, so the
// browser blocks them.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := origin != "" && origin == h.allowedOrigin
		w.Header().Add("Vary", "Origin")

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
