package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultHeatmapIncomes are the income rows of the default grid.
var DefaultHeatmapIncomes = []decimal.Decimal{
	decimal.NewFromInt(600000),
	decimal.NewFromInt(800000),
	decimal.NewFromInt(1000000),
	decimal.NewFromInt(1200000),
	decimal.NewFromInt(1400000),
}

// DefaultShortTermPoints are the short-term percentage columns of the default grid.
var DefaultShortTermPoints = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(20),
	decimal.NewFromInt(40),
	decimal.NewFromInt(60),
	decimal.NewFromInt(80),
	decimal.NewFromInt(100),
}

// HeatmapCell is one computed grid point.
type HeatmapCell struct {
	Point  domain.HeatmapPoint
	Result *domain.TaxResult
	Active bool
}

// Heatmap is a grid of results, rows by income and columns by short-term %.
type Heatmap struct {
	Incomes       []decimal.Decimal
	ShortTermPcts []decimal.Decimal
	Cells         [][]HeatmapCell
	MinRatePct    decimal.Decimal
	MaxRatePct    decimal.Decimal
	Configuration string
}

// CalculateHeatmap computes every grid cell. The cell matching active, if
// any, is flagged.
func (ce *CalculationEngine) CalculateHeatmap(incomes, pcts []decimal.Decimal, active *domain.HeatmapPoint, fc domain.FilingConfiguration) (*Heatmap, error) {
	hm := &Heatmap{
		Incomes:       incomes,
		ShortTermPcts: pcts,
		Cells:         make([][]HeatmapCell, len(incomes)),
		Configuration: fc.Name,
	}
	activeKey := ""
	if active != nil {
		activeKey = active.Key()
	}

	first := true
	for i, income := range incomes {
		row := make([]HeatmapCell, len(pcts))
		for j, pct := range pcts {
			p := domain.HeatmapPoint{
				ID:           fmt.Sprintf("H%d-%d", i+1, j+1),
				Income:       income,
				ShortTermPct: pct,
			}
			res, err := ce.CalculateHeatmapPoint(p, fc)
			if err != nil {
				return nil, fmt.Errorf("heatmap cell income=%s pct=%s: %w", income, pct, err)
			}
			row[j] = HeatmapCell{Point: p, Result: res, Active: p.Key() == activeKey}
			if first || res.EffectiveRatePct.LessThan(hm.MinRatePct) {
				hm.MinRatePct = res.EffectiveRatePct
			}
			if first || res.EffectiveRatePct.GreaterThan(hm.MaxRatePct) {
				hm.MaxRatePct = res.EffectiveRatePct
			}
			first = false
		}
		hm.Cells[i] = row
	}
	return hm, nil
}

// DefaultScenarioPoints returns the twenty-point batch S01..S20: ten incomes
// from 600k to 1.5M, each paired with two short-term percentages.
func DefaultScenarioPoints() []domain.HeatmapPoint {
	incomes := []int64{600000, 700000, 800000, 900000, 1000000, 1100000, 1200000, 1300000, 1400000, 1500000}
	pctPairs := [][2]int64{
		{0, 30}, {10, 40}, {0, 50}, {20, 60}, {0, 70},
		{30, 80}, {0, 90}, {40, 100}, {20, 80}, {0, 100},
	}

	points := make([]domain.HeatmapPoint, 0, len(incomes)*2)
	n := 1
	for i, income := range incomes {
		for _, pct := range pctPairs[i] {
			points = append(points, domain.HeatmapPoint{
				ID:           fmt.Sprintf("S%02d", n),
				Income:       decimal.NewFromInt(income),
				ShortTermPct: decimal.NewFromInt(pct),
			})
			n++
		}
	}
	return points
}

// CalculatePoints computes a batch of heatmap points in order.
func (ce *CalculationEngine) CalculatePoints(points []domain.HeatmapPoint, fc domain.FilingConfiguration) ([]domain.TaxResult, error) {
	results := make([]domain.TaxResult, 0, len(points))
	for _, p := range points {
		res, err := ce.CalculateHeatmapPoint(p, fc)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}
