package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// es shares the es-AR separators: "." groups, "," decimals.
var arsPrinter = message.NewPrinter(language.Spanish)

// FormatARS renders an amount as whole pesos with es-AR grouping: "$ 43.000".
func FormatARS(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return arsPrinter.Sprintf("-$ %d", -n)
	}
	return arsPrinter.Sprintf("$ %d", n)
}

// FormattedTotals: Totals as shown in the totals box.
type FormattedTotals struct {
	Labor string `json:"labor"`
	Paint string `json:"paint"`
	Total string `json:"total"`
}

func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Labor: FormatARS(t.Labor),
		Paint: FormatARS(t.Paint),
		Total: FormatARS(t.Total),
	}
}
