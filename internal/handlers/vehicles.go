package handlers

import (
	"errors"
	"net/http"
)

var errVehiclesUnavailable = errors.New("vehicle catalog is not loaded")

// vehiclesReady guards the cascade endpoints: without a catalog the
// dropdowns stay empty.
func (e *Env) vehiclesReady(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !e.Catalog.VehiclesReady() {
		e.writeError(w, http.StatusServiceUnavailable, errVehiclesUnavailable)
		return false
	}
	return true
}

// GET /api/vehicles/brands
func (e *Env) HandleBrands(w http.ResponseWriter, r *http.Request) {
	if !e.vehiclesReady(w, r) {
		return
	}
	e.writeJSON(w, listResponse{Items: e.Catalog.Brands()})
}

// GET /api/vehicles/models?brand=TOYOTA
func (e *Env) HandleModels(w http.ResponseWriter, r *http.Request) {
	if !e.vehiclesReady(w, r) {
		return
	}
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		http.Error(w, "brand is required", http.StatusBadRequest)
		return
	}
	e.writeJSON(w, listResponse{Items: e.Catalog.Models(brand)})
}

// GET /api/vehicles/versions?brand=TOYOTA&model=HILUX
func (e *Env) HandleVersions(w http.ResponseWriter, r *http.Request) {
	if !e.vehiclesReady(w, r) {
		return
	}
	q := r.URL.Query()
	brand, model := q.Get("brand"), q.Get("model")
	if brand == "" || model == "" {
		http.Error(w, "brand/model required", http.StatusBadRequest)
		return
	}
	e.writeJSON(w, listResponse{Items: e.Catalog.Versions(brand, model)})
}

// GET /api/vehicles/resolve?brand=&model=&version=
func (e *Env) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if !e.vehiclesReady(w, r) {
		return
	}
	q := r.URL.Query()
	v, ok := e.Catalog.Resolve(q.Get("brand"), q.Get("model"), q.Get("version"))
	if !ok {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	e.writeJSON(w, v)
}
