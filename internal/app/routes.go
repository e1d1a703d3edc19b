package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bodyshop-estimator/internal/handlers"
)

func registerRoutes(mux *http.ServeMux, env *handlers.Env) {
	withCORS := handlers.WithCORS

	// --- vehicle cascade ---
	mux.Handle("/api/vehicles/brands", withCORS(http.HandlerFunc(env.HandleBrands)))
	mux.Handle("/api/vehicles/models", withCORS(http.HandlerFunc(env.HandleModels)))
	mux.Handle("/api/vehicles/versions", withCORS(http.HandlerFunc(env.HandleVersions)))
	mux.Handle("/api/vehicles/resolve", withCORS(http.HandlerFunc(env.HandleResolve)))

	// --- damage grid ---
	mux.Handle("/api/grid", withCORS(http.HandlerFunc(env.HandleGrid)))
	mux.Handle("/api/cost", withCORS(http.HandlerFunc(env.HandleCost)))

	// --- estimate sessions ---
	mux.Handle("/api/estimates", withCORS(http.HandlerFunc(env.HandleEstimates)))
	mux.Handle("/api/estimates/", withCORS(http.HandlerFunc(env.HandleEstimate)))

	// --- admin ---
	mux.Handle("/api/admin/catalog", withCORS(http.HandlerFunc(env.HandleAdminCatalog)))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", env.HandleHealth)
}
