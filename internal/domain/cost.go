package domain

const (
	LaborBaseRate = 50000 // ARS per labor ratio unit (chapa)
	PaintBaseRate = 60000 // ARS per paint ratio unit (pintura)
)

// Error is a user-facing rejection of an estimator action. Message is shown
// to the user as is.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrRatioNotFound = &Error{
		Code:    "ratio_not_found",
		Message: "No hay ratio definido para ese repuesto en ese segmento.",
	}
	ErrNoVehicleSelected = &Error{
		Code:    "no_vehicle_selected",
		Message: "Primero seleccioná Marca / Modelo / Versión para conocer el segmento del vehículo.",
	}
	ErrGridUnavailable = &Error{
		Code:    "grid_unavailable",
		Message: "Los ratios de reparación no están disponibles.",
	}
)

// Rates: base hourly rates the ratios are applied to.
type Rates struct {
	Labor float64 `json:"labor"`
	Paint float64 `json:"paint"`
}

// DefaultRates returns the standard shop rates.
func DefaultRates() Rates {
	return Rates{
		Labor: LaborBaseRate,
		Paint: PaintBaseRate,
	}
}

// CostEntry: computed cost of one damaged part.
type CostEntry struct {
	Labor float64 `json:"labor"`
	Paint float64 `json:"paint"`
	Total float64 `json:"total"`
}

// ComputeCost looks up the ratio for part/segment and applies the rates.
// Values are not rounded.
func ComputeCost(rows []RatioRow, part string, seg Segment, rates Rates) (CostEntry, error) {
	row, ok := FindRatio(rows, part, seg)
	if !ok {
		return CostEntry{}, ErrRatioNotFound
	}

	labor := rates.Labor * row.LaborRatio
	paint := rates.Paint * row.PaintRatio
	return CostEntry{
		Labor: labor,
		Paint: paint,
		Total: labor + paint,
	}, nil
}
