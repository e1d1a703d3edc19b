package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment: vehicle size tier code used by the ratio tables.
type Segment int

const (
	SegmentMotorcycle Segment = 0 // MM0
	SegmentCar        Segment = 1 // MM1
	SegmentSUV        Segment = 2 // MM2
	SegmentPickup     Segment = 3 // MM3
)

var segmentLabels = map[string]Segment{
	"MM0": SegmentMotorcycle,
	"MM1": SegmentCar,
	"MM2": SegmentSUV,
	"MM3": SegmentPickup,
}

// SegmentFromLabel maps "MM0".."MM3" to a segment code.
func SegmentFromLabel(label string) (Segment, bool) {
	s, ok := segmentLabels[strings.ToUpper(strings.TrimSpace(label))]
	return s, ok
}

// ParseSegment accepts a label ("MM2") or a numeric code ("2", "2.0").
func ParseSegment(v string) (Segment, error) {
	v = strings.TrimSpace(v)
	if s, ok := SegmentFromLabel(v); ok {
		return s, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("unknown segment %q", v)
	}
	s := Segment(f)
	if float64(s) != f || !s.Valid() {
		return 0, fmt.Errorf("unknown segment %q", v)
	}
	return s, nil
}

func (s Segment) Valid() bool {
	return s >= SegmentMotorcycle && s <= SegmentPickup
}

// Label returns "MM0".."MM3".
func (s Segment) Label() string {
	return "MM" + strconv.Itoa(int(s))
}

func (s Segment) String() string {
	switch s {
	case SegmentMotorcycle:
		return "motorcycle"
	case SegmentCar:
		return "car"
	case SegmentSUV:
		return "suv"
	case SegmentPickup:
		return "pickup"
	}
	return "segment(" + strconv.Itoa(int(s)) + ")"
}

// VehicleRecord: one row of the vehicle catalog.
type VehicleRecord struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Version      string `json:"version"`
	VehicleCode  string `json:"vehicleCode"`
	SegmentLabel string `json:"segment"` // MM0..MM3
	Range        string `json:"range"`   // "gama", shown only
}

// Segment resolves the record's label to a code. Records with an unknown
// label have no segment and every ratio lookup against them fails.
func (v VehicleRecord) Segment() (Segment, bool) {
	return SegmentFromLabel(v.SegmentLabel)
}
