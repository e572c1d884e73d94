package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioID))
	sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.Configuration))
	if compSet.SourcePath != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", compSet.SourcePath))
	}
	if compSet.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run: %s\n", compSet.RunID))
	}
	sb.WriteString("\n")

	nameWidth := 12
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Gross Income",
		numWidth, "Final Tax",
		numWidth, "Effective Rate",
		numWidth, "After Tax"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioID))

			if !alt.TaxDiffFromBase.IsZero() {
				taxSymbol := tf.deltaSymbol(alt.TaxDiffFromBase)
				sb.WriteString(fmt.Sprintf("  Final Tax:        %s$%s\n",
					taxSymbol,
					tf.formatDecimal(alt.TaxDiffFromBase.Abs())))
			}

			sb.WriteString(fmt.Sprintf("  Effective Rate:   %s%s pts\n",
				tf.deltaSymbol(alt.RateDiffFromBase),
				alt.RateDiffFromBase.Abs().StringFixed(2)))

			afterSymbol := tf.deltaSymbol(alt.AfterTaxDiffFromBase)
			sb.WriteString(fmt.Sprintf("  After-Tax Income: %s$%s\n",
				afterSymbol,
				tf.formatDecimal(alt.AfterTaxDiffFromBase.Abs())))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioID
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.GrossIncome),
		numWidth, "$"+tf.formatDecimal(result.FinalTax),
		numWidth, result.EffectiveRatePct.StringFixed(2)+"%",
		numWidth, "$"+tf.formatDecimal(result.AfterTaxIncome))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix for a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of tax deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioID))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		taxChange := "="
		if alt.TaxDiffFromBase.IsPositive() {
			taxChange = fmt.Sprintf("+$%s", tf.formatDecimal(alt.TaxDiffFromBase))
		} else if alt.TaxDiffFromBase.IsNegative() {
			taxChange = fmt.Sprintf("-$%s", tf.formatDecimal(alt.TaxDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioID, taxChange))
	}

	return sb.String()
}
