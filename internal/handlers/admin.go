package handlers

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bodyshop-estimator/internal/catalog"
)

// requireAdmin checks HTTP basic auth against the configured bcrypt hash.
func (e *Env) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if e.AdminPasswordHash == "" {
		http.NotFound(w, r)
		return false
	}

	user, pass, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(e.AdminUser)) != 1 ||
		bcrypt.CompareHashAndPassword([]byte(e.AdminPasswordHash), []byte(pass)) != nil {
		e.Log.Warn("admin auth rejected", zap.String("user", user), zap.String("remote", r.RemoteAddr))
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

type adminCatalogResponse struct {
	catalog.Stats
	Sessions int `json:"sessions"`
}

// GET /api/admin/catalog: what was loaded and how many estimates are open.
func (e *Env) HandleAdminCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !e.requireAdmin(w, r) {
		return
	}

	e.writeJSON(w, adminCatalogResponse{
		Stats:    e.Catalog.Stats(),
		Sessions: e.Sessions.Len(),
	})
}
