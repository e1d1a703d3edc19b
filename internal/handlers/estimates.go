package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"bodyshop-estimator/internal/domain"
	"bodyshop-estimator/internal/estimate"
)

type createEstimateResponse struct {
	ID     string   `json:"id"`
	Brands []string `json:"brands"`
}

// HandleEstimates serves /api/estimates.
//
// POST -> start a new estimate session.
func (e *Env) HandleEstimates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := e.Sessions.Create()
	e.Log.Debug("estimate created", zap.String("session", s.ID))
	e.writeJSONStatus(w, http.StatusCreated, createEstimateResponse{
		ID:     s.ID,
		Brands: e.Catalog.Brands(),
	})
}

// HandleEstimate serves /api/estimates/{id}[/action].
//
// GET    /api/estimates/{id}          -> snapshot
// DELETE /api/estimates/{id}          -> drop the session
// POST   /api/estimates/{id}/brand    -> {brand}, returns models
// POST   /api/estimates/{id}/model    -> {model}, returns versions
// POST   /api/estimates/{id}/version  -> {version}, returns the vehicle
// POST   /api/estimates/{id}/damage   -> {sector, part, repairType, checked}
func (e *Env) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/estimates/"), "/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}

	s, ok := e.Sessions.Get(parts[0])
	if !ok {
		http.Error(w, "estimate not found", http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			e.writeJSON(w, s.Snapshot())
		case http.MethodDelete:
			e.Sessions.Delete(s.ID)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch parts[1] {
	case "brand":
		e.handleSelectBrand(w, r, s)
	case "model":
		e.handleSelectModel(w, r, s)
	case "version":
		e.handleSelectVersion(w, r, s)
	case "damage":
		e.handleToggleDamage(w, r, s)
	default:
		http.NotFound(w, r)
	}
}

type selectRequest struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

func (e *Env) handleSelectBrand(w http.ResponseWriter, r *http.Request, s *estimate.Session) {
	var req selectRequest
	if !e.decode(w, r, &req) {
		return
	}
	if req.Brand == "" {
		http.Error(w, "brand is required", http.StatusBadRequest)
		return
	}
	e.writeJSON(w, listResponse{Items: s.SelectBrand(req.Brand)})
}

func (e *Env) handleSelectModel(w http.ResponseWriter, r *http.Request, s *estimate.Session) {
	var req selectRequest
	if !e.decode(w, r, &req) {
		return
	}
	if req.Model == "" {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}
	e.writeJSON(w, listResponse{Items: s.SelectModel(req.Model)})
}

type selectVersionResponse struct {
	Found     bool                  `json:"found"`
	Vehicle   *domain.VehicleRecord `json:"vehicle,omitempty"`
	Selection estimate.Selection    `json:"selection"`
}

func (e *Env) handleSelectVersion(w http.ResponseWriter, r *http.Request, s *estimate.Session) {
	var req selectRequest
	if !e.decode(w, r, &req) {
		return
	}
	if req.Version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	resp := selectVersionResponse{}
	if v, ok := s.SelectVersion(req.Version); ok {
		resp.Found = true
		resp.Vehicle = &v
	}
	resp.Selection = s.Selection()
	e.writeJSON(w, resp)
}

type toggleRequest struct {
	Sector     string `json:"sector"`
	Part       string `json:"part"`
	RepairType string `json:"repairType"`
	Checked    *bool  `json:"checked"`
}

type toggleResponse struct {
	estimate.ToggleResult
	Display domain.FormattedTotals `json:"display"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

func (e *Env) handleToggleDamage(w http.ResponseWriter, r *http.Request, s *estimate.Session) {
	var req toggleRequest
	if !e.decode(w, r, &req) {
		return
	}

	sector, err := domain.ParseSector(req.Sector)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rt, err := domain.ParseRepairType(req.RepairType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Part == "" {
		http.Error(w, "part is required", http.StatusBadRequest)
		return
	}
	if req.Checked == nil {
		http.Error(w, "checked is required", http.StatusBadRequest)
		return
	}

	key := domain.DamageKey{Sector: sector, Part: req.Part, RepairType: rt}
	res, err := s.Toggle(key, *req.Checked)
	resp := toggleResponse{
		ToggleResult: res,
		Display:      res.Totals.Formatted(),
	}
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			e.writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Error = de.Message
		resp.Code = de.Code

		status := http.StatusUnprocessableEntity
		if de == domain.ErrGridUnavailable {
			status = http.StatusServiceUnavailable
		}
		e.writeJSONStatus(w, status, resp)
		return
	}

	e.writeJSON(w, resp)
}
