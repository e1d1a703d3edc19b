package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentFromLabel(t *testing.T) {
	for label, want := range map[string]Segment{
		"MM0": SegmentMotorcycle,
		"MM1": SegmentCar,
		"MM2": SegmentSUV,
		"mm3": SegmentPickup,
	} {
		got, ok := SegmentFromLabel(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got)
	}

	_, ok := SegmentFromLabel("MM4")
	assert.False(t, ok)
	_, ok = SegmentFromLabel("")
	assert.False(t, ok)
}

func TestParseSegment(t *testing.T) {
	for in, want := range map[string]Segment{
		"2":   SegmentSUV,
		" 1 ": SegmentCar,
		"3.0": SegmentPickup,
		"MM0": SegmentMotorcycle,
	} {
		got, err := ParseSegment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "4", "-1", "1.5", "SUV"} {
		_, err := ParseSegment(in)
		assert.Error(t, err, in)
	}
}

func TestSegmentLabel(t *testing.T) {
	assert.Equal(t, "MM2", SegmentSUV.Label())
	assert.Equal(t, "pickup", SegmentPickup.String())
}

func TestVehicleRecordSegment(t *testing.T) {
	seg, ok := VehicleRecord{SegmentLabel: "MM1"}.Segment()
	require.True(t, ok)
	assert.Equal(t, SegmentCar, seg)

	_, ok = VehicleRecord{SegmentLabel: "XX"}.Segment()
	assert.False(t, ok)
}

func TestParseSector(t *testing.T) {
	for in, want := range map[string]Sector{
		"trasero":   SectorRear,
		"REAR":      SectorRear,
		"delantero": SectorFront,
		"front":     SectorFront,
		"lateral":   SectorLateral,
		"side":      SectorLateral,
	} {
		got, err := ParseSector(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseSector("techo")
	assert.Error(t, err)
}

func TestParseRepairType(t *testing.T) {
	got, err := ParseRepairType("repara")
	require.NoError(t, err)
	assert.Equal(t, RepairTypeRepair, got)

	got, err = ParseRepairType("Cambia")
	require.NoError(t, err)
	assert.Equal(t, RepairTypeReplace, got)

	_, err = ParseRepairType("pinta")
	assert.Error(t, err)
}

func TestSumEntriesAndSortedItems(t *testing.T) {
	a := DamageKey{Sector: SectorRear, Part: "BAUL", RepairType: RepairTypeRepair}
	b := DamageKey{Sector: SectorFront, Part: "CAPOT", RepairType: RepairTypeReplace}
	m := map[DamageKey]CostEntry{
		a: {Labor: 25000, Paint: 18000, Total: 43000},
		b: {Labor: 10000, Paint: 6000, Total: 16000},
	}

	tot := SumEntries(m)
	assert.Equal(t, Totals{Labor: 35000, Paint: 24000, Total: 59000, Items: 2}, tot)

	items := SortedItems(m)
	require.Len(t, items, 2)
	assert.Equal(t, b, items[0].DamageKey) // delantero < trasero
	assert.Equal(t, a, items[1].DamageKey)

	assert.Equal(t, Totals{}, SumEntries(nil))
}

func TestFormatARS(t *testing.T) {
	assert.Equal(t, "$ 43.000", FormatARS(43000))
	assert.Equal(t, "$ 1.250.000", FormatARS(1249999.6))
	assert.Equal(t, "$ 0", FormatARS(0))
	assert.Equal(t, "-$ 18.000", FormatARS(-18000))

	f := Totals{Labor: 25000, Paint: 18000, Total: 43000}.Formatted()
	assert.Equal(t, "$ 18.000", f.Paint)
}
