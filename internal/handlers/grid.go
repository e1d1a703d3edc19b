package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bodyshop-estimator/internal/domain"
)

var errSegmentRequired = errors.New("segment is required")

type gridSector struct {
	Sector domain.Sector `json:"sector"`
	Parts  []string      `json:"parts"`
}

type gridResponse struct {
	Sectors     []gridSector        `json:"sectors"`
	RepairTypes []domain.RepairType `json:"repairTypes"`
	Rates       domain.Rates        `json:"rates"`
}

// GET /api/grid: checkbox layout: parts of every sector and the repair types.
func (e *Env) HandleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !e.Catalog.RatiosReady() {
		e.writeError(w, http.StatusServiceUnavailable, domain.ErrGridUnavailable)
		return
	}

	resp := gridResponse{
		RepairTypes: domain.RepairTypes,
		Rates:       e.Catalog.Rates(),
	}
	for _, s := range domain.Sectors {
		resp.Sectors = append(resp.Sectors, gridSector{Sector: s, Parts: e.Catalog.Parts(s)})
	}
	e.writeJSON(w, resp)
}

// CostRequest: segment is a label ("MM2") or a code (2 or "2").
type CostRequest struct {
	Sector  string          `json:"sector"`
	Part    string          `json:"part"`
	Segment json.RawMessage `json:"segment"`
}

type CostResponse struct {
	domain.CostEntry
	Segment domain.Segment         `json:"segment"`
	Display domain.FormattedTotals `json:"display"`
}

// POST /api/cost: stateless ratio lookup for one part.
func (e *Env) HandleCost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CostRequest
	if !e.decode(w, r, &req) {
		return
	}

	sector, err := domain.ParseSector(req.Sector)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Part == "" {
		http.Error(w, "part is required", http.StatusBadRequest)
		return
	}
	seg, err := parseSegmentJSON(req.Segment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !e.Catalog.RatiosReady() {
		e.writeError(w, http.StatusServiceUnavailable, domain.ErrGridUnavailable)
		return
	}

	cost, err := e.Catalog.ComputeCost(sector, req.Part, seg)
	if err != nil {
		e.writeError(w, http.StatusNotFound, err)
		return
	}

	e.writeJSON(w, CostResponse{
		CostEntry: cost,
		Segment:   seg,
		Display: domain.Totals{
			Labor: cost.Labor,
			Paint: cost.Paint,
			Total: cost.Total,
		}.Formatted(),
	})
}

func parseSegmentJSON(raw json.RawMessage) (domain.Segment, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, errSegmentRequired
		}
		s = n.String()
	}
	if strings.TrimSpace(s) == "" {
		return 0, errSegmentRequired
	}
	return domain.ParseSegment(s)
}
