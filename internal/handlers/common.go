// internal/handlers/common.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bodyshop-estimator/internal/catalog"
	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/estimate"
	"bodyshop-estimator/internal/logging"
)

// Env holds the handlers' dependencies.
type Env struct {
	Catalog  *catalog.Catalog
	Sessions *estimate.Store
	Log      *logging.Logger

	// basic auth for /api/admin/*; disabled while the hash is empty
	AdminUser         string
	AdminPasswordHash string
}

type listResponse struct {
	Items []string `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON: JSON response helper
func (e *Env) writeJSON(w http.ResponseWriter, v interface{}) {
	e.writeJSONStatus(w, http.StatusOK, v)
}

func (e *Env) writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.Log.Warn("write response", zap.Error(err))
	}
}

// writeError sends {error, code}. User-facing domain errors keep their
// message and code; anything else is sent as plain text.
func (e *Env) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.Code = de.Code
	}
	e.writeJSONStatus(w, status, resp)
}

func (e *Env) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// WithCORS: simple CORS middleware for the estimator page.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HandleHealth: GET /healthz
func (e *Env) HandleHealth(w http.ResponseWriter, r *http.Request) {
	e.writeJSON(w, map[string]bool{
		"ok":       true,
		"vehicles": e.Catalog.VehiclesReady(),
		"grid":     e.Catalog.RatiosReady(),
	})
}
