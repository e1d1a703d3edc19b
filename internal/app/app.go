package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"bodyshop-estimator/internal/catalog"
	"bodyshop-estimator/internal/config"
	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/estimate"
	"bodyshop-estimator/internal/handlers"
	"bodyshop-estimator/internal/logging"
)

type App struct {
	mux      *http.ServeMux
	Env      *handlers.Env
	Sessions *estimate.Store
}

// New loads the lookup tables and wires the handlers. db may be nil, then the
// static catalog is served as loaded.
func New(ctx context.Context, cfg *config.Config, db *sql.DB, log *logging.Logger) (*App, error) {
	mux := http.NewServeMux()

	// 1. Rates, fixed for the life of the process
	def := domain.DefaultRates()
	rates := domain.Rates{
		Labor: cfg.GetFloat("LABOR_BASE_RATE", def.Labor),
		Paint: cfg.GetFloat("PAINT_BASE_RATE", def.Paint),
	}

	// 2. Where the static JSON lives
	srcCfg := cfg.CatalogSource()
	src, err := pickSource(ctx, srcCfg)
	if err != nil {
		return nil, fmt.Errorf("catalog source: %w", err)
	}

	// 3. Static load; failures only disable the affected feature
	catLog := log.With(zap.String("component", "catalog"))
	loadCtx, cancel := context.WithTimeout(ctx, srcCfg.Timeout)
	cat := catalog.Load(loadCtx, src, rates, catLog)
	cancel()

	// 4. Optional database mirror: schema, seed when empty, then serve from it
	if db != nil {
		if err := ensureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("ensureSchema: %w", err)
		}
		if err := seedCatalog(ctx, db, cat, catLog); err != nil {
			return nil, fmt.Errorf("seedCatalog: %w", err)
		}
		cat, err = loadCatalog(ctx, db, rates, catLog)
		if err != nil {
			return nil, fmt.Errorf("loadCatalog: %w", err)
		}
		log.Info("catalog served from database", zap.Any("stats", cat.Stats()))
	}

	// 5. Sessions and handlers
	sessions := estimate.NewStore(cat)
	env := &handlers.Env{
		Catalog:  cat,
		Sessions: sessions,
		Log:      log,

		AdminUser:         cfg.GetString("ADMIN_USER", "admin"),
		AdminPasswordHash: cfg.GetString("ADMIN_PASSWORD_HASH", ""),
	}

	registerRoutes(mux, env)

	return &App{
		mux:      mux,
		Env:      env,
		Sessions: sessions,
	}, nil
}

func (a *App) Router() *http.ServeMux {
	return a.mux
}

// pickSource prefers S3, then an HTTP base URL, then the local directory.
func pickSource(ctx context.Context, c config.CatalogSource) (catalog.Source, error) {
	switch {
	case c.S3Bucket != "":
		return catalog.NewS3Source(ctx, c.S3Bucket, c.S3Prefix, c.Region, c.Endpoint)
	case c.URL != "":
		return catalog.HTTPSource{BaseURL: c.URL}, nil
	default:
		return catalog.FSSource{FS: os.DirFS(c.Dir), Name: c.Dir}, nil
	}
}
