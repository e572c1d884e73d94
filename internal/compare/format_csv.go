package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Gross Income",
		"Regular Tax",
		"NIIT",
		"Foreign Credit",
		"Final Tax",
		"Effective Rate Pct",
		"After Tax Income",
		"Tax Diff from Base",
		"Rate Diff from Base",
		"After Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioID,
		scenarioType,
		result.GrossIncome.StringFixed(2),
		result.RegularTax.StringFixed(2),
		result.NIIT.StringFixed(2),
		result.ForeignCredit.StringFixed(2),
		result.FinalTax.StringFixed(2),
		result.EffectiveRatePct.StringFixed(4),
		result.AfterTaxIncome.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.RateDiffFromBase.StringFixed(4),
		result.AfterTaxDiffFromBase.StringFixed(2),
	}
}
