package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rptax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as console text
type TableFormatter struct{}

// Format generates a report for one solve
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Solve For:      %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal:           %s = %s\n", result.Request.Goal, tf.formatGoal(result.Request.Goal, result.Request.Constraints.TargetValue)))
	sb.WriteString(fmt.Sprintf("Configuration:  %s\n", result.Request.Configuration.Name))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:     %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:    %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Total Income:     %s\n", output.FormatCurrency(result.Point.Income)))
	sb.WriteString(fmt.Sprintf("Short-Term Share: %s\n", output.FormatPercentage(result.Point.ShortTermPct)))
	sb.WriteString("\n")

	if result.Result != nil {
		sb.WriteString("RESULTS AT POINT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Final Tax:        %s\n", output.FormatCurrency(result.Result.FinalTax)))
		sb.WriteString(fmt.Sprintf("Effective Rate:   %s\n", output.FormatPercentage(result.Result.EffectiveRatePct)))
		sb.WriteString(fmt.Sprintf("After-Tax Income: %s\n", output.FormatCurrency(result.Result.AfterTaxIncome)))
		sb.WriteString(fmt.Sprintf("Gap to Target:    %s%s\n", tf.deltaSymbol(result.Gap), tf.formatGoal(result.Request.Goal, result.Gap.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSweep formats a short-term break-even line across incomes
func (tf *TableFormatter) FormatSweep(sweep *SweepResult, goal SolveGoal, target decimal.Decimal) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SHORT-TERM SHARE BY INCOME\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal: %s = %s\n\n", goal, tf.formatGoal(goal, target)))

	sb.WriteString(fmt.Sprintf("%-15s %12s %15s %15s %15s\n",
		"Income", "Short-Term", "Final Tax", "Effective Rate", "After Tax"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range sweep.Results {
		sb.WriteString(fmt.Sprintf("%-15s %12s %15s %15s %15s\n",
			"$"+tf.formatShort(res.Point.Income),
			res.Point.ShortTermPct.StringFixed(2)+"%",
			"$"+tf.formatShort(res.Result.FinalTax),
			res.Result.EffectiveRatePct.StringFixed(2)+"%",
			"$"+tf.formatShort(res.Result.AfterTaxIncome)))
	}

	if len(sweep.Unreachable) > 0 {
		sb.WriteString("\nUNREACHABLE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, income := range sweep.Unreachable {
			sb.WriteString(fmt.Sprintf("• $%s: target not reachable at any short-term share\n", tf.formatShort(income)))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatGoal(goal SolveGoal, v decimal.Decimal) string {
	if goal == GoalEffectiveRate {
		return output.FormatPercentage(v)
	}
	return output.FormatCurrency(v)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}
