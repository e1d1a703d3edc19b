package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/logging"
	"bodyshop-estimator/internal/metrics"
)

// Static file names.
const (
	VehiclesFile = "LPM_SEGMENTOS.json"
)

// RatioFiles maps each sector to its table file.
var RatioFiles = map[domain.Sector]string{
	domain.SectorRear:    "trasero.json",
	domain.SectorFront:   "delantero.json",
	domain.SectorLateral: "lateral.json",
}

func readAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// LoadVehicles reads and normalizes the vehicle catalog.
func LoadVehicles(ctx context.Context, src Source) ([]domain.VehicleRecord, error) {
	data, err := readAll(ctx, src, VehiclesFile)
	if err != nil {
		return nil, err
	}
	return decodeVehicles(data)
}

// LoadRatios fetches the three sector tables concurrently. Any failure fails
// the whole load: the grid must not run against a partial set of tables.
// Skipped rows are reported to log.
func LoadRatios(ctx context.Context, src Source, log *logging.Logger) (map[domain.Sector][]domain.RatioRow, error) {
	if log == nil {
		log = logging.Nop()
	}

	tables := make([][]domain.RatioRow, len(domain.Sectors))
	g, gctx := errgroup.WithContext(ctx)
	for i, sector := range domain.Sectors {
		i, sector := i, sector
		g.Go(func() error {
			name := RatioFiles[sector]
			data, err := readAll(gctx, src, name)
			if err != nil {
				return err
			}
			rows, issues, err := decodeRatios(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			for _, is := range issues {
				log.LogDataQualityEvent(string(sector), is.Row, is.Issue)
			}
			tables[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[domain.Sector][]domain.RatioRow, len(domain.Sectors))
	for i, sector := range domain.Sectors {
		out[sector] = tables[i]
	}
	return out, nil
}

// Load runs the vehicle and ratio loads independently. Failures are logged
// and leave the affected part of the catalog disabled; they are never fatal.
func Load(ctx context.Context, src Source, rates domain.Rates, log *logging.Logger) *Catalog {
	if log == nil {
		log = logging.Nop()
	}
	start := time.Now()

	var (
		vehicles []domain.VehicleRecord
		ratios   map[domain.Sector][]domain.RatioRow
		vErr     error
		rErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		vehicles, vErr = LoadVehicles(ctx, src)
		return nil
	})
	g.Go(func() error {
		ratios, rErr = LoadRatios(ctx, src, log)
		return nil
	})
	_ = g.Wait()

	status := "ok"
	if vErr != nil {
		status = "partial"
		vehicles = nil
		log.LogDataLoadFailure(VehiclesFile, vErr)
	}
	if rErr != nil {
		status = "partial"
		ratios = nil
		log.LogDataLoadFailure("ratios", rErr)
	}
	metrics.CatalogLoadDuration.WithLabelValues(src.String(), status).Observe(time.Since(start).Seconds())

	c := New(vehicles, ratios, rates).WithSource(src.String())
	log.Info("catalog loaded",
		zap.String("source", src.String()),
		zap.Int("vehicles", len(c.vehicles)),
		zap.Int("trasero", len(c.Ratios(domain.SectorRear))),
		zap.Int("delantero", len(c.Ratios(domain.SectorFront))),
		zap.Int("lateral", len(c.Ratios(domain.SectorLateral))),
		zap.Bool("grid_enabled", c.RatiosReady()),
	)
	return c
}
