package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/shopspring/decimal"
)

// HeatmapMetric selects the value shown in each grid cell.
type HeatmapMetric string

const (
	HeatmapEffectiveRate HeatmapMetric = "rate"
	HeatmapTaxDue        HeatmapMetric = "tax"
)

// FormatHeatmap renders the grid with incomes as rows and short-term
// percentages as columns. The active cell is bracketed.
func FormatHeatmap(hm *calculation.Heatmap, metric HeatmapMetric) string {
	var buf bytes.Buffer

	title := "EFFECTIVE RATE"
	if metric == HeatmapTaxDue {
		title = "TAX DUE"
	}
	buf.WriteString(headingStyle.Render(fmt.Sprintf("%s HEATMAP (%s)", title, hm.Configuration)) + "\n")
	fmt.Fprintf(&buf, "Range: %s to %s\n\n", FormatPercentage(hm.MinRatePct), FormatPercentage(hm.MaxRatePct))

	fmt.Fprintf(&buf, "%-12s", "Income \\ ST%")
	for _, pct := range hm.ShortTermPcts {
		fmt.Fprintf(&buf, " %14s", pct.String()+"%")
	}
	buf.WriteString("\n")

	for i, income := range hm.Incomes {
		fmt.Fprintf(&buf, "%-12s", compactDollars(income))
		for _, cell := range hm.Cells[i] {
			value := FormatPercentage(cell.Result.EffectiveRatePct)
			if metric == HeatmapTaxDue {
				value = compactDollars(cell.Result.FinalTax)
			}
			if cell.Active {
				value = "[" + value + "]"
			}
			fmt.Fprintf(&buf, " %14s", value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func compactDollars(d decimal.Decimal) string {
	switch {
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return "$" + d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(0)
}
