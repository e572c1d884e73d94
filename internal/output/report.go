package output

import (
	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is the unit handed to formatters: computed results plus any
// input warnings gathered while loading them.
type Report struct {
	Configuration string                         `json:"configuration"`
	Results       []domain.TaxResult             `json:"results"`
	Points        map[string]domain.HeatmapPoint `json:"points,omitempty"`
	Warnings      []string                       `json:"warnings,omitempty"`
}

// NewReport builds a report for results computed under configuration.
func NewReport(configuration string, results []domain.TaxResult) *Report {
	return &Report{Configuration: configuration, Results: results}
}

// NewPointReport builds a report for heatmap point results, keeping the
// points so income splits can be reported exactly.
func NewPointReport(configuration string, points []domain.HeatmapPoint, results []domain.TaxResult) *Report {
	r := NewReport(configuration, results)
	r.Points = make(map[string]domain.HeatmapPoint, len(points))
	for _, p := range points {
		r.Points[p.ID] = p.Bounded()
	}
	return r
}

var centsFactor = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as US dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	cents := amount.Mul(centsFactor).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
