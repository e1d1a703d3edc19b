// Package estimate holds one user's estimate: the brand/model/version cascade
// and the damage grid with its running totals.
package estimate

import (
	"errors"
	"sync"
	"time"

	"bodyshop-estimator/internal/catalog"
	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/metrics"
)

// Selection: the cascade state of one session.
type Selection struct {
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Version string `json:"version,omitempty"`

	// Vehicle is the shown result; cleared whenever brand or model change.
	Vehicle *domain.VehicleRecord `json:"vehicle,omitempty"`

	// SegmentLabel feeds the ratio lookups. Only a version selection
	// overwrites it.
	SegmentLabel string `json:"segment,omitempty"`
}

// Session owns one selection and one damage map. All methods are serialized,
// each call runs to completion before the next one starts.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	catalog   *catalog.Catalog
	selection Selection
	items     map[domain.DamageKey]domain.CostEntry
	touchedAt time.Time
}

func NewSession(id string, c *catalog.Catalog) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		catalog:   c,
		items:     make(map[domain.DamageKey]domain.CostEntry),
		touchedAt: now,
	}
}

func (s *Session) touch() { s.touchedAt = time.Now() }

// SelectBrand resets model, version and the shown result, and returns the
// brand's models.
func (s *Session) SelectBrand(brand string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Brand = brand
	s.selection.Model = ""
	s.selection.Version = ""
	s.selection.Vehicle = nil
	return s.catalog.Models(brand)
}

// SelectModel resets version and the shown result, and returns the versions
// of the current brand and this model.
func (s *Session) SelectModel(model string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Model = model
	s.selection.Version = ""
	s.selection.Vehicle = nil
	return s.catalog.Versions(s.selection.Brand, model)
}

// SelectVersion resolves the full record and publishes its segment label.
// When nothing matches the segment is cleared and ok is false.
func (s *Session) SelectVersion(version string) (domain.VehicleRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Version = version
	v, ok := s.catalog.Resolve(s.selection.Brand, s.selection.Model, version)
	if !ok {
		s.selection.Vehicle = nil
		s.selection.SegmentLabel = ""
		return domain.VehicleRecord{}, false
	}
	s.selection.Vehicle = &v
	s.selection.SegmentLabel = v.SegmentLabel
	return v, true
}

// ToggleResult is the state of the grid after one checkbox transition.
type ToggleResult struct {
	Key     domain.DamageKey  `json:"key"`
	Checked bool              `json:"checked"`
	Entry   *domain.CostEntry `json:"entry,omitempty"`
	Totals  domain.Totals     `json:"totals"`
}

// Toggle applies a checkbox transition. A rejected check leaves the damage
// map unchanged, reports the checkbox as unchecked, and returns one of
// domain.ErrGridUnavailable, ErrNoVehicleSelected or ErrRatioNotFound.
// Unchecking always removes the key.
func (s *Session) Toggle(key domain.DamageKey, checked bool) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !checked {
		delete(s.items, key)
		metrics.DamageToggles.WithLabelValues("uncheck", "ok").Inc()
		return ToggleResult{Key: key, Totals: domain.SumEntries(s.items)}, nil
	}

	entry, err := s.check(key)
	if err != nil {
		metrics.DamageToggles.WithLabelValues("check", rejectReason(err)).Inc()
		return ToggleResult{Key: key, Totals: domain.SumEntries(s.items)}, err
	}

	s.items[key] = entry
	metrics.DamageToggles.WithLabelValues("check", "ok").Inc()
	return ToggleResult{
		Key:     key,
		Checked: true,
		Entry:   &entry,
		Totals:  domain.SumEntries(s.items),
	}, nil
}

func (s *Session) check(key domain.DamageKey) (domain.CostEntry, error) {
	if !s.catalog.RatiosReady() {
		return domain.CostEntry{}, domain.ErrGridUnavailable
	}
	if s.selection.SegmentLabel == "" {
		return domain.CostEntry{}, domain.ErrNoVehicleSelected
	}
	seg, ok := domain.SegmentFromLabel(s.selection.SegmentLabel)
	if !ok {
		// a label outside MM0..MM3 has no ratio rows
		return domain.CostEntry{}, domain.ErrRatioNotFound
	}
	// repair and replace price the same for now
	return s.catalog.ComputeCost(key.Sector, key.Part, seg)
}

func rejectReason(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "error"
}

// Totals sums all checked cells.
func (s *Session) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SumEntries(s.items)
}

// Selection returns a copy of the cascade state.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySelection()
}

func (s *Session) copySelection() Selection {
	sel := s.selection
	if sel.Vehicle != nil {
		v := *sel.Vehicle
		sel.Vehicle = &v
	}
	return sel
}

// Snapshot is the full state of a session.
type Snapshot struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"createdAt"`
	Selection Selection              `json:"selection"`
	Items     []domain.DamageItem    `json:"items"`
	Totals    domain.Totals          `json:"totals"`
	Display   domain.FormattedTotals `json:"display"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tot := domain.SumEntries(s.items)
	return Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Selection: s.copySelection(),
		Items:     domain.SortedItems(s.items),
		Totals:    tot,
		Display:   tot.Formatted(),
	}
}

// idleSince reports when the session was last used.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
