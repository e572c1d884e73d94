package calculation

import (
	"testing"

	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHeatmap_DefaultGrid(t *testing.T) {
	engine := NewCalculationEngine()
	fc := filing(t, config.Config2026MFJ)
	active := &domain.HeatmapPoint{Income: d(800000), ShortTermPct: d(100)}

	hm, err := engine.CalculateHeatmap(DefaultHeatmapIncomes, DefaultShortTermPoints, active, fc)
	require.NoError(t, err)

	require.Len(t, hm.Cells, 5, "Should have one row per income")
	activeCount := 0
	for _, row := range hm.Cells {
		require.Len(t, row, 6, "Should have one column per percentage")
		for _, cell := range row {
			assert.True(t, cell.Result.EffectiveRatePct.GreaterThanOrEqual(hm.MinRatePct))
			assert.True(t, cell.Result.EffectiveRatePct.LessThanOrEqual(hm.MaxRatePct))
			if cell.Active {
				activeCount++
			}
		}
	}
	assert.Equal(t, 1, activeCount, "Should flag exactly one active cell")
	assert.True(t, hm.Cells[1][5].Active, "Should flag the 800k/100% cell")
	assert.Equal(t, "227168.50", hm.Cells[1][5].Result.FinalTax.StringFixed(2))
	assert.Equal(t, config.Config2026MFJ, hm.Configuration)
}

func TestCalculateHeatmap_RateRisesWithShortTermShare(t *testing.T) {
	engine := NewCalculationEngine()
	fc := filing(t, config.Config2026MFJ)

	hm, err := engine.CalculateHeatmap(DefaultHeatmapIncomes, DefaultShortTermPoints, nil, fc)
	require.NoError(t, err)

	for _, row := range hm.Cells {
		for j := 1; j < len(row); j++ {
			assert.True(t, row[j].Result.EffectiveRatePct.GreaterThanOrEqual(row[j-1].Result.EffectiveRatePct),
				"Should not fall as the short-term share grows")
		}
	}
}

func TestDefaultScenarioPoints(t *testing.T) {
	points := DefaultScenarioPoints()

	require.Len(t, points, 20)
	assert.Equal(t, "S01", points[0].ID)
	assert.Equal(t, "600000", points[0].Income.String())
	assert.True(t, points[0].ShortTermPct.IsZero())
	assert.Equal(t, "S20", points[19].ID)
	assert.Equal(t, "1500000", points[19].Income.String())
	assert.Equal(t, "100", points[19].ShortTermPct.String())
}

func TestCalculatePoints(t *testing.T) {
	engine := NewCalculationEngine()
	fc := filing(t, config.Config2026MFJ)

	results, err := engine.CalculatePoints(DefaultScenarioPoints(), fc)
	require.NoError(t, err)

	require.Len(t, results, 20)
	assert.Equal(t, "S01", results[0].ScenarioID)
	for _, r := range results {
		assert.True(t, r.FinalTax.IsPositive(), "Should owe tax at %s", r.ScenarioID)
	}
}
