package domain

import (
	"fmt"
	"strings"
)

// Sector: body zone, each with its own ratio table.
type Sector string

const (
	SectorRear    Sector = "trasero"
	SectorFront   Sector = "delantero"
	SectorLateral Sector = "lateral"
)

// Sectors in display order.
var Sectors = []Sector{SectorRear, SectorFront, SectorLateral}

// ParseSector accepts the table names and their English aliases.
func ParseSector(s string) (Sector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trasero", "rear":
		return SectorRear, nil
	case "delantero", "front":
		return SectorFront, nil
	case "lateral", "side":
		return SectorLateral, nil
	}
	return "", fmt.Errorf("unknown sector %q", s)
}

// RatioRow: one (part, segment) entry of a sector table.
type RatioRow struct {
	Segment    Segment `json:"segment"`
	Part       string  `json:"part"`
	LaborRatio float64 `json:"laborRatio"`
	PaintRatio float64 `json:"paintRatio"`
}

// FindRatio returns the first row matching part and segment.
func FindRatio(rows []RatioRow, part string, seg Segment) (RatioRow, bool) {
	for _, r := range rows {
		if r.Part == part && r.Segment == seg {
			return r, true
		}
	}
	return RatioRow{}, false
}
