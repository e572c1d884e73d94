package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// HeatmapPoint addresses a simplified scenario where all income is capital
// gain split between short and long term by ShortTermPct.
type HeatmapPoint struct {
	ID           string          `json:"scenario_id"`
	Income       decimal.Decimal `json:"total_income"`
	ShortTermPct decimal.Decimal `json:"stcg_pct"`
}

// Bounded floors income at 1 and clamps the percentage into [0,100].
func (p HeatmapPoint) Bounded() HeatmapPoint {
	income := decimal.Max(decimal.NewFromInt(1), p.Income)
	pct := decimal.Min(hundred, decimal.Max(decimal.Zero, p.ShortTermPct))
	return HeatmapPoint{ID: p.ID, Income: income, ShortTermPct: pct}
}

// LongTermPct is the complement of the short-term percentage.
func (p HeatmapPoint) LongTermPct() decimal.Decimal {
	return hundred.Sub(p.Bounded().ShortTermPct)
}

// Key identifies the point for grids and selections.
func (p HeatmapPoint) Key() string {
	b := p.Bounded()
	return fmt.Sprintf("%s@%s", b.Income.String(), b.ShortTermPct.String())
}

// Inputs converts the point into a detailed scenario. All income is
// US-source so the foreign tax credit path contributes nothing.
func (p HeatmapPoint) Inputs(fc FilingConfiguration) ScenarioInputs {
	b := p.Bounded()
	short := b.Income.Mul(b.ShortTermPct).Div(hundred)
	long := b.Income.Sub(short)
	return ScenarioInputs{
		ShortTerm:          short,
		LongTerm:           long,
		QualifiedDividends: UnsetQualified(),
		USShortTerm:        short,
		USLongTerm:         long,
		StandardDeduction:  fc.StandardDeduction,
		NIITThreshold:      fc.NIITThreshold,
		CapitalLossCap:     fc.CapitalLossCap,
	}
}
