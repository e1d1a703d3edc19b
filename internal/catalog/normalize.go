package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bodyshop-estimator/internal/domain"
)

// Source field names. Some ratio files spell the segment column "SEG.".
const (
	fieldSegment    = "SEG"
	fieldSegmentAlt = "SEG."
	fieldPart       = "REPUESTO"
	fieldLaborRatio = "RATIO M.O."
	fieldPaintRatio = "RATIO P."
)

// rawVehicle keeps every cell raw: exports mix numbers and strings in any
// column (model "208", segment 2).
type rawVehicle struct {
	Brand   json.RawMessage `json:"CyC_desc_marca"`
	Model   json.RawMessage `json:"CyC_desc_modelo"`
	Version json.RawMessage `json:"CyC_desc_version"`
	Code    json.RawMessage `json:"CyC_cod_vehiculo"`
	Segment json.RawMessage `json:"segmento"`
	Range   json.RawMessage `json:"gama"`
}

// rowIssue is a reason a source row was skipped.
type rowIssue struct {
	Row   int
	Issue string
}

func decodeVehicles(data []byte) ([]domain.VehicleRecord, error) {
	var raws []rawVehicle
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}

	out := make([]domain.VehicleRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, domain.VehicleRecord{
			Brand:        text(r.Brand),
			Model:        text(r.Model),
			Version:      text(r.Version),
			VehicleCode:  text(r.Code),
			SegmentLabel: segmentLabel(r.Segment),
			Range:        text(r.Range),
		})
	}
	return out, nil
}

// decodeRatios maps source rows to RatioRow. Rows whose segment, part or
// ratios cannot be read are skipped and reported.
func decodeRatios(data []byte) ([]domain.RatioRow, []rowIssue, error) {
	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("decode ratios: %w", err)
	}

	var issues []rowIssue
	out := make([]domain.RatioRow, 0, len(raws))
	for i, raw := range raws {
		row, err := normalizeRatio(raw)
		if err != nil {
			issues = append(issues, rowIssue{Row: i, Issue: err.Error()})
			continue
		}
		out = append(out, row)
	}
	return out, issues, nil
}

func normalizeRatio(raw map[string]json.RawMessage) (domain.RatioRow, error) {
	segRaw, ok := raw[fieldSegment]
	if !ok || isNull(segRaw) {
		segRaw, ok = raw[fieldSegmentAlt]
	}
	if !ok {
		return domain.RatioRow{}, fmt.Errorf("missing segment")
	}
	segStr, ok := scalarString(segRaw)
	if !ok {
		return domain.RatioRow{}, fmt.Errorf("missing segment")
	}
	seg, err := domain.ParseSegment(segStr)
	if err != nil {
		return domain.RatioRow{}, err
	}

	part, _ := scalarString(raw[fieldPart])
	if part == "" {
		return domain.RatioRow{}, fmt.Errorf("missing part name")
	}

	labor, err := scalarFloat(raw[fieldLaborRatio])
	if err != nil {
		return domain.RatioRow{}, fmt.Errorf("labor ratio: %w", err)
	}
	paint, err := scalarFloat(raw[fieldPaintRatio])
	if err != nil {
		return domain.RatioRow{}, fmt.Errorf("paint ratio: %w", err)
	}

	return domain.RatioRow{
		Segment:    seg,
		Part:       part,
		LaborRatio: labor,
		PaintRatio: paint,
	}, nil
}

// text is scalarString with absent, null and non-scalar cells read as "".
func text(raw json.RawMessage) string {
	s, _ := scalarString(raw)
	return s
}

// segmentLabel maps a label or a bare code (2, "2", 2.0) to "MM0".."MM3".
// Anything else is kept as written so the lookup reports it as unknown.
func segmentLabel(raw json.RawMessage) string {
	s := text(raw)
	if seg, err := domain.ParseSegment(s); err == nil {
		return seg.Label()
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalarString reads a JSON string or number as trimmed text.
func scalarString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// scalarFloat reads a JSON number or a numeric string ("0,5" included).
func scalarFloat(raw json.RawMessage) (float64, error) {
	s, ok := scalarString(raw)
	if !ok || s == "" {
		return 0, fmt.Errorf("missing value")
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}
