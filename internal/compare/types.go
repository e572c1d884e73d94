package compare

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its key metrics
type ComparisonResult struct {
	ScenarioID string            `json:"scenarioId"`
	IsBase     bool              `json:"isBase"`
	Result     *domain.TaxResult `json:"result"`

	// Key Metrics
	GrossIncome      decimal.Decimal `json:"grossIncome"`
	RegularTax       decimal.Decimal `json:"regularTax"`
	NIIT             decimal.Decimal `json:"niit"`
	ForeignCredit    decimal.Decimal `json:"foreignCredit"`
	FinalTax         decimal.Decimal `json:"finalTax"`
	EffectiveRatePct decimal.Decimal `json:"effectiveRatePct"`
	AfterTaxIncome   decimal.Decimal `json:"afterTaxIncome"`

	// Comparison to Base
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"`
	RateDiffFromBase     decimal.Decimal `json:"rateDiffFromBase"`
	AfterTaxDiffFromBase decimal.Decimal `json:"afterTaxDiffFromBase"`
}

// ComparisonSet represents a base scenario and its variants
type ComparisonSet struct {
	RunID              string             `json:"runId"`
	Configuration      string             `json:"configuration"`
	BaseScenarioID     string             `json:"baseScenarioId"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	SourcePath         string             `json:"sourcePath,omitempty"`
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics lifts the headline numbers out of a result
func (mc *MetricsCalculator) CalculateMetrics(res *domain.TaxResult) ComparisonResult {
	return ComparisonResult{
		ScenarioID:       res.ScenarioID,
		Result:           res,
		GrossIncome:      res.GrossIncome,
		RegularTax:       res.RegularTax,
		NIIT:             res.NIIT.Tax,
		ForeignCredit:    res.FTC.Allowed,
		FinalTax:         res.FinalTax,
		EffectiveRatePct: res.EffectiveRatePct,
		AfterTaxIncome:   res.AfterTaxIncome,
	}
}

// CalculateComparison computes deltas of a scenario against the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.FinalTax.Sub(base.FinalTax)
	scenario.RateDiffFromBase = scenario.EffectiveRatePct.Sub(base.EffectiveRatePct)
	scenario.AfterTaxDiffFromBase = scenario.AfterTaxIncome.Sub(base.AfterTaxIncome)
	return scenario
}

// GenerateRecommendations highlights the variants that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalTax.LessThan(lowestTax.FinalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.FinalTax.Sub(lowestTax.FinalTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioID+" owes $"+savings.StringFixed(0)+" less than the base scenario")
	}

	lowestRate := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EffectiveRatePct.LessThan(lowestRate.EffectiveRatePct) {
			lowestRate = alt
		}
	}
	if lowestRate != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Effective Rate: %s at %s%% (base %s%%)",
				lowestRate.ScenarioID,
				lowestRate.EffectiveRatePct.StringFixed(2),
				compSet.BaseResult.EffectiveRatePct.StringFixed(2)))
	}

	bestAfterTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AfterTaxIncome.GreaterThan(bestAfterTax.AfterTaxIncome) {
			bestAfterTax = alt
		}
	}
	if bestAfterTax != compSet.BaseResult {
		gain := bestAfterTax.AfterTaxIncome.Sub(compSet.BaseResult.AfterTaxIncome)
		recommendations = append(recommendations,
			"Highest After-Tax Income: "+bestAfterTax.ScenarioID+" keeps $"+gain.StringFixed(0)+" more than the base scenario")
	}

	return recommendations
}
