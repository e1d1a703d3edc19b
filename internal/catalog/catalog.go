// Package catalog holds the static lookup tables of the estimator: the
// vehicle catalog and the three sector ratio tables. A Catalog is built once
// and never mutated, so it is safe for concurrent readers.
package catalog

import (
	"sort"
	"time"

	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/metrics"
)

type Catalog struct {
	vehicles []domain.VehicleRecord
	ratios   map[domain.Sector][]domain.RatioRow
	rates    domain.Rates

	vehiclesReady bool
	ratiosReady   bool

	source   string
	loadedAt time.Time
}

// New builds a catalog from already loaded tables. A nil vehicles slice or a
// nil ratios map marks that part as not loaded.
func New(vehicles []domain.VehicleRecord, ratios map[domain.Sector][]domain.RatioRow, rates domain.Rates) *Catalog {
	c := &Catalog{
		vehicles:      vehicles,
		ratios:        ratios,
		rates:         rates,
		vehiclesReady: vehicles != nil,
		ratiosReady:   ratios != nil,
		loadedAt:      time.Now(),
	}
	if c.ratios == nil {
		c.ratios = map[domain.Sector][]domain.RatioRow{}
	}

	metrics.CatalogRows.WithLabelValues("vehicles").Set(float64(len(c.vehicles)))
	for _, s := range domain.Sectors {
		metrics.CatalogRows.WithLabelValues(string(s)).Set(float64(len(c.ratios[s])))
	}
	return c
}

func (c *Catalog) VehiclesReady() bool { return c.vehiclesReady }

// RatiosReady reports whether all three ratio tables loaded. The damage grid
// only works when it is true.
func (c *Catalog) RatiosReady() bool { return c.ratiosReady }

func (c *Catalog) Rates() domain.Rates { return c.rates }

func (c *Catalog) Vehicles() []domain.VehicleRecord { return c.vehicles }

// Ratios returns the table of one sector; unknown sectors get nil.
func (c *Catalog) Ratios(s domain.Sector) []domain.RatioRow { return c.ratios[s] }

// Brands returns the sorted distinct brands.
func (c *Catalog) Brands() []string {
	return distinctSorted(c.vehicles, func(v domain.VehicleRecord) (string, bool) {
		return v.Brand, true
	})
}

// Models returns the sorted distinct models of a brand.
func (c *Catalog) Models(brand string) []string {
	return distinctSorted(c.vehicles, func(v domain.VehicleRecord) (string, bool) {
		return v.Model, v.Brand == brand
	})
}

// Versions returns the sorted distinct versions of a brand/model.
func (c *Catalog) Versions(brand, model string) []string {
	return distinctSorted(c.vehicles, func(v domain.VehicleRecord) (string, bool) {
		return v.Version, v.Brand == brand && v.Model == model
	})
}

// Resolve returns the first record matching brand, model and version.
func (c *Catalog) Resolve(brand, model, version string) (domain.VehicleRecord, bool) {
	for _, v := range c.vehicles {
		if v.Brand == brand && v.Model == model && v.Version == version {
			return v, true
		}
	}
	return domain.VehicleRecord{}, false
}

// Parts returns the sorted distinct part names of a sector table.
func (c *Catalog) Parts(s domain.Sector) []string {
	seen := make(map[string]struct{})
	parts := make([]string, 0)
	for _, r := range c.ratios[s] {
		if _, ok := seen[r.Part]; ok {
			continue
		}
		seen[r.Part] = struct{}{}
		parts = append(parts, r.Part)
	}
	sort.Strings(parts)
	return parts
}

// ComputeCost looks up sector/part/segment and prices it at the catalog rates.
func (c *Catalog) ComputeCost(s domain.Sector, part string, seg domain.Segment) (domain.CostEntry, error) {
	cost, err := domain.ComputeCost(c.ratios[s], part, seg, c.rates)

	result := "ok"
	if err != nil {
		result = "not_found"
	}
	metrics.CostLookups.WithLabelValues(string(s), result).Inc()

	return cost, err
}

// Stats summarizes what was loaded, for the admin endpoint.
type Stats struct {
	Source        string         `json:"source"`
	LoadedAt      time.Time      `json:"loadedAt"`
	VehiclesReady bool           `json:"vehiclesReady"`
	RatiosReady   bool           `json:"ratiosReady"`
	Vehicles      int            `json:"vehicles"`
	Ratios        map[string]int `json:"ratios"`
	Rates         domain.Rates   `json:"rates"`
}

func (c *Catalog) Stats() Stats {
	st := Stats{
		Source:        c.source,
		LoadedAt:      c.loadedAt,
		VehiclesReady: c.vehiclesReady,
		RatiosReady:   c.ratiosReady,
		Vehicles:      len(c.vehicles),
		Ratios:        make(map[string]int, len(domain.Sectors)),
		Rates:         c.rates,
	}
	for _, s := range domain.Sectors {
		st.Ratios[string(s)] = len(c.ratios[s])
	}
	return st
}

// WithSource labels where the tables came from. Call it right after New,
// before the catalog is shared.
func (c *Catalog) WithSource(source string) *Catalog {
	c.source = source
	return c
}

func distinctSorted(vs []domain.VehicleRecord, pick func(domain.VehicleRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range vs {
		s, ok := pick(v)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
