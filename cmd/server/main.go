package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bodyshop-estimator/internal/app"
	"bodyshop-estimator/internal/config"
	"bodyshop-estimator/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.GetString("LOG_LEVEL", "info"),
		Format: cfg.GetString("LOG_FORMAT", "json"),
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the database is optional: without DATABASE_URL the static tables are served directly
	var db *sql.DB
	if dsn := cfg.GetString("DATABASE_URL", ""); dsn != "" {
		db, err = app.OpenDB(ctx, dsn)
		if err != nil {
			logger.Fatal("open db", zap.Error(err))
		}
		defer db.Close()
		logger.Info("DB connected")
	}

	a, err := app.New(ctx, cfg, db, logger)
	if err != nil {
		logger.Fatal("init app", zap.Error(err))
	}

	idle := cfg.GetDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour)
	if idle > 0 {
		go a.Sessions.RunJanitor(ctx, idle/4, idle, logger)
	}

	addr := cfg.Addr()
	logger.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, a.Router()); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
