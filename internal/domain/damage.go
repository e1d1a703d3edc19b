package domain

import (
	"fmt"
	"sort"
	"strings"
)

type RepairType string

const (
	RepairTypeRepair  RepairType = "repair"
	RepairTypeReplace RepairType = "replace"
)

// RepairTypes in grid column order.
var RepairTypes = []RepairType{RepairTypeRepair, RepairTypeReplace}

// ParseRepairType accepts "repair"/"replace" and the grid's "repara"/"cambia".
func ParseRepairType(s string) (RepairType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repair", "repara":
		return RepairTypeRepair, nil
	case "replace", "cambia":
		return RepairTypeReplace, nil
	}
	return "", fmt.Errorf("unknown repair type %q", s)
}

// DamageKey identifies one checkbox of the damage grid.
type DamageKey struct {
	Sector     Sector     `json:"sector"`
	Part       string     `json:"part"`
	RepairType RepairType `json:"repairType"`
}

// Less orders keys by sector, part, repair type.
func (k DamageKey) Less(o DamageKey) bool {
	if k.Sector != o.Sector {
		return k.Sector < o.Sector
	}
	if k.Part != o.Part {
		return k.Part < o.Part
	}
	return k.RepairType < o.RepairType
}

// DamageItem is a checked grid cell with its cost.
type DamageItem struct {
	DamageKey
	CostEntry
}

// Totals: aggregate over all checked cells.
type Totals struct {
	Labor float64 `json:"labor"`
	Paint float64 `json:"paint"`
	Total float64 `json:"total"`
	Items int     `json:"items"`
}

// SumEntries adds up every entry of a damage map.
func SumEntries(m map[DamageKey]CostEntry) Totals {
	var t Totals
	for _, e := range m {
		t.Labor += e.Labor
		t.Paint += e.Paint
		t.Total += e.Total
		t.Items++
	}
	return t
}

// SortedItems returns the map as a slice ordered by key.
func SortedItems(m map[DamageKey]CostEntry) []DamageItem {
	items := make([]DamageItem, 0, len(m))
	for k, e := range m {
		items = append(items, DamageItem{DamageKey: k, CostEntry: e})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DamageKey.Less(items[j].DamageKey)
	})
	return items
}
