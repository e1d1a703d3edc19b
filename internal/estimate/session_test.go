package estimate

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bodyshop-estimator/internal/catalog"
	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/metrics"
)

func testCatalog() *catalog.Catalog {
	vehicles := []domain.VehicleRecord{
		{Brand: "TOYOTA", Model: "HILUX", Version: "2.8 SRX", VehicleCode: "1", SegmentLabel: "MM3"},
		{Brand: "TOYOTA", Model: "SW4", Version: "2.8 SRX", VehicleCode: "2", SegmentLabel: "MM2"},
		{Brand: "TOYOTA", Model: "SW4", Version: "2.8 GR", VehicleCode: "3", SegmentLabel: "MM2"},
		{Brand: "TOYOTA", Model: "ETIOS", Version: "1.5 XLS", VehicleCode: "4", SegmentLabel: "MM1"},
		{Brand: "TOYOTA", Model: "ETIOS", Version: "1.5 XLS", VehicleCode: "5", SegmentLabel: "MM1"},
		{Brand: "FIAT", Model: "CRONOS", Version: "1.3", VehicleCode: "6", SegmentLabel: "MM1"},
		{Brand: "IVECO", Model: "DAILY", Version: "35C", VehicleCode: "7", SegmentLabel: "MM9"},
	}
	ratios := map[domain.Sector][]domain.RatioRow{
		domain.SectorRear: {
			{Segment: domain.SegmentSUV, Part: "BAUL", LaborRatio: 0.5, PaintRatio: 0.3},
			{Segment: domain.SegmentCar, Part: "BAUL", LaborRatio: 0.4, PaintRatio: 0.25},
		},
		domain.SectorFront: {
			{Segment: domain.SegmentSUV, Part: "CAPOT", LaborRatio: 0.8, PaintRatio: 0.6},
		},
		domain.SectorLateral: {},
	}
	return catalog.New(vehicles, ratios, domain.DefaultRates())
}

var (
	rearTrunk    = domain.DamageKey{Sector: domain.SectorRear, Part: "BAUL", RepairType: domain.RepairTypeRepair}
	rearTrunkNew = domain.DamageKey{Sector: domain.SectorRear, Part: "BAUL", RepairType: domain.RepairTypeReplace}
	frontHood    = domain.DamageKey{Sector: domain.SectorFront, Part: "CAPOT", RepairType: domain.RepairTypeRepair}
)

func suvSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("s1", testCatalog())
	s.SelectBrand("TOYOTA")
	s.SelectModel("SW4")
	_, ok := s.SelectVersion("2.8 GR")
	require.True(t, ok)
	return s
}

func TestCascade(t *testing.T) {
	s := NewSession("s1", testCatalog())

	assert.Equal(t, []string{"ETIOS", "HILUX", "SW4"}, s.SelectBrand("TOYOTA"))
	assert.Equal(t, []string{"2.8 GR", "2.8 SRX"}, s.SelectModel("SW4"))

	// duplicated version collapses to one entry
	assert.Equal(t, []string{"1.5 XLS"}, s.SelectModel("ETIOS"))

	v, ok := s.SelectVersion("1.5 XLS")
	require.True(t, ok)
	assert.Equal(t, "4", v.VehicleCode)

	sel := s.Selection()
	assert.Equal(t, "MM1", sel.SegmentLabel)
	require.NotNil(t, sel.Vehicle)
	assert.Equal(t, "ETIOS", sel.Vehicle.Model)
}

func TestSelectBrandResetsModelAndVersion(t *testing.T) {
	s := suvSession(t)

	models := s.SelectBrand("FIAT")
	assert.Equal(t, []string{"CRONOS"}, models)

	sel := s.Selection()
	assert.Equal(t, "FIAT", sel.Brand)
	assert.Empty(t, sel.Model)
	assert.Empty(t, sel.Version)
	assert.Nil(t, sel.Vehicle)
}

func TestSelectModelResetsVersion(t *testing.T) {
	s := suvSession(t)

	s.SelectModel("HILUX")
	sel := s.Selection()
	assert.Equal(t, "HILUX", sel.Model)
	assert.Empty(t, sel.Version)
	assert.Nil(t, sel.Vehicle)
}

func TestSelectVersionNotFoundClearsSegment(t *testing.T) {
	s := suvSession(t)

	_, ok := s.SelectVersion("3.0 V6")
	assert.False(t, ok)
	assert.Empty(t, s.Selection().SegmentLabel)

	_, err := s.Toggle(rearTrunk, true)
	assert.ErrorIs(t, err, domain.ErrNoVehicleSelected)
}

func TestToggleBeforeVehicleIsRejected(t *testing.T) {
	s := NewSession("s1", testCatalog())

	res, err := s.Toggle(rearTrunk, true)
	require.ErrorIs(t, err, domain.ErrNoVehicleSelected)
	assert.False(t, res.Checked)
	assert.Nil(t, res.Entry)
	assert.Equal(t, domain.Totals{}, res.Totals)
	assert.Empty(t, s.Snapshot().Items)
}

func TestToggleCheckAddsEntry(t *testing.T) {
	s := suvSession(t)

	res, err := s.Toggle(rearTrunk, true)
	require.NoError(t, err)
	assert.True(t, res.Checked)
	require.NotNil(t, res.Entry)
	assert.Equal(t, domain.CostEntry{Labor: 25000, Paint: 18000, Total: 43000}, *res.Entry)
	assert.Equal(t, domain.Totals{Labor: 25000, Paint: 18000, Total: 43000, Items: 1}, res.Totals)
}

func TestToggleRoundTripRestoresTotals(t *testing.T) {
	s := suvSession(t)

	_, err := s.Toggle(frontHood, true)
	require.NoError(t, err)
	before := s.Totals()

	_, err = s.Toggle(rearTrunk, true)
	require.NoError(t, err)
	res, err := s.Toggle(rearTrunk, false)
	require.NoError(t, err)

	assert.False(t, res.Checked)
	assert.Equal(t, before, res.Totals)
	assert.Equal(t, before, s.Totals())
}

func TestToggleTwoChecksSum(t *testing.T) {
	s := suvSession(t)

	a, err := s.Toggle(rearTrunk, true)
	require.NoError(t, err)
	b, err := s.Toggle(frontHood, true)
	require.NoError(t, err)

	tot := s.Totals()
	assert.Equal(t, a.Entry.Labor+b.Entry.Labor, tot.Labor)
	assert.Equal(t, a.Entry.Paint+b.Entry.Paint, tot.Paint)
	assert.Equal(t, a.Entry.Total+b.Entry.Total, tot.Total)
	assert.Equal(t, 2, tot.Items)
}

func TestRepairAndReplaceAreSeparateEntries(t *testing.T) {
	s := suvSession(t)

	_, err := s.Toggle(rearTrunk, true)
	require.NoError(t, err)
	res, err := s.Toggle(rearTrunkNew, true)
	require.NoError(t, err)

	assert.Equal(t, 86000.0, res.Totals.Total)
	assert.Len(t, s.Snapshot().Items, 2)
}

func TestToggleRatioNotFound(t *testing.T) {
	s := suvSession(t)
	_, err := s.Toggle(rearTrunk, true)
	require.NoError(t, err)

	missing := domain.DamageKey{Sector: domain.SectorLateral, Part: "PUERTA", RepairType: domain.RepairTypeRepair}
	res, err := s.Toggle(missing, true)
	require.ErrorIs(t, err, domain.ErrRatioNotFound)
	assert.False(t, res.Checked)
	assert.Equal(t, 43000.0, res.Totals.Total)
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestUnknownSegmentLabelFindsNoRatio(t *testing.T) {
	s := NewSession("s1", testCatalog())
	s.SelectBrand("IVECO")
	s.SelectModel("DAILY")
	_, ok := s.SelectVersion("35C")
	require.True(t, ok)

	_, err := s.Toggle(rearTrunk, true)
	assert.ErrorIs(t, err, domain.ErrRatioNotFound)
}

func TestSegmentSurvivesBrandChange(t *testing.T) {
	s := suvSession(t)
	s.SelectBrand("FIAT")

	// only a version selection replaces the segment
	_, err := s.Toggle(rearTrunk, true)
	require.NoError(t, err)
	assert.Equal(t, "MM2", s.Selection().SegmentLabel)
}

func TestUncheckWithoutEntryIsNoop(t *testing.T) {
	s := NewSession("s1", testCatalog())

	res, err := s.Toggle(rearTrunk, false)
	require.NoError(t, err)
	assert.Equal(t, domain.Totals{}, res.Totals)
}

func TestGridUnavailableWithoutRatios(t *testing.T) {
	c := catalog.New([]domain.VehicleRecord{
		{Brand: "FIAT", Model: "CRONOS", Version: "1.3", SegmentLabel: "MM1"},
	}, nil, domain.DefaultRates())
	s := NewSession("s1", c)
	s.SelectBrand("FIAT")
	s.SelectModel("CRONOS")
	s.SelectVersion("1.3")

	res, err := s.Toggle(rearTrunk, true)
	require.ErrorIs(t, err, domain.ErrGridUnavailable)
	assert.False(t, res.Checked)
}

func TestToggleCountsMetrics(t *testing.T) {
	s := NewSession("s1", testCatalog())
	before := testutil.ToFloat64(metrics.DamageToggles.WithLabelValues("check", "no_vehicle_selected"))

	_, _ = s.Toggle(rearTrunk, true)

	after := testutil.ToFloat64(metrics.DamageToggles.WithLabelValues("check", "no_vehicle_selected"))
	assert.Equal(t, before+1, after)
}

func TestSnapshot(t *testing.T) {
	s := suvSession(t)
	_, _ = s.Toggle(rearTrunk, true)
	_, _ = s.Toggle(frontHood, true)

	snap := s.Snapshot()
	assert.Equal(t, "s1", snap.ID)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, frontHood, snap.Items[0].DamageKey)
	assert.Equal(t, "$ 119.000", snap.Display.Total)

	// the snapshot does not alias session state
	snap.Selection.Vehicle.Model = "changed"
	assert.Equal(t, "SW4", s.Selection().Vehicle.Model)
}

func TestStore(t *testing.T) {
	st := NewStore(testCatalog())

	a := st.Create()
	b := st.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, st.Len())

	got, ok := st.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, st.Delete(a.ID))
	assert.False(t, st.Delete(a.ID))
	_, ok = st.Get(a.ID)
	assert.False(t, ok)
}

func TestStoreSweep(t *testing.T) {
	st := NewStore(testCatalog())
	old := st.Create()
	fresh := st.Create()

	old.mu.Lock()
	old.touchedAt = time.Now().Add(-3 * time.Hour)
	old.mu.Unlock()

	assert.Equal(t, 1, st.Sweep(2*time.Hour))
	_, ok := st.Get(old.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}
