package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// ConsoleFormatter renders a detailed breakdown of each result.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(headingStyle.Render("CAPITAL GAINS TAX ANALYSIS") + "\n")
	buf.WriteString(strings.Repeat("=", 64) + "\n")
	fmt.Fprintf(&buf, "Configuration: %s\n", report.Configuration)
	fmt.Fprintf(&buf, "Scenarios:     %d\n\n", len(report.Results))

	for i := range report.Results {
		writeResult(&buf, &report.Results[i])
	}

	if len(report.Warnings) > 0 {
		buf.WriteString(sectionStyle.Render("WARNINGS") + "\n")
		for _, w := range report.Warnings {
			buf.WriteString(warningStyle.Render("  ! "+w) + "\n")
		}
	}

	return buf.Bytes(), nil
}

func writeResult(buf *bytes.Buffer, r *domain.TaxResult) {
	buf.WriteString(headingStyle.Render("SCENARIO "+r.ScenarioID) + "\n")
	buf.WriteString(strings.Repeat("-", 64) + "\n")

	buf.WriteString(sectionStyle.Render("INCOME") + "\n")
	line(buf, "Gross Income", r.GrossIncome)
	line(buf, "Ordinary Dividends", r.OrdinaryDividends)
	line(buf, "Qualified Dividends", r.QualifiedDividends)
	line(buf, "Net Short-Term Gain", r.Netting.OrdinaryCapGain)
	line(buf, "Net Long-Term Gain", r.Netting.PrefCapGain)
	line(buf, "Capital Loss Deduction", r.Netting.CapLossDeduction)
	line(buf, "Capital Loss Carryover", r.Netting.CapLossCarryover)
	line(buf, "Ordinary Income", r.OrdinaryIncome)
	line(buf, "Preferential Income", r.PreferentialIncome)
	line(buf, "AGI", r.AGI)
	line(buf, "Standard Deduction", r.StandardDeduction)
	line(buf, "Taxable Income", r.TaxableIncome)
	line(buf, "  Taxable Ordinary", r.TaxableOrdinary)
	line(buf, "  Taxable Preferential", r.TaxablePreferential)
	buf.WriteString("\n")

	buf.WriteString(sectionStyle.Render("REGULAR TAX") + "\n")
	line(buf, "Ordinary Tax", r.OrdinaryTax)
	line(buf, "Preferential at 0%", r.Preferential.AtZero)
	line(buf, "Preferential at 15%", r.Preferential.AtFifteen)
	line(buf, "Preferential at 20%", r.Preferential.AtTwenty)
	line(buf, "Preferential Tax", r.PreferentialTax)
	line(buf, "Regular Tax", r.RegularTax)
	buf.WriteString("\n")

	buf.WriteString(sectionStyle.Render("NET INVESTMENT INCOME TAX") + "\n")
	line(buf, "Threshold", r.NIIT.Threshold)
	line(buf, "MAGI Excess", r.NIIT.MAGIExcess)
	line(buf, "Net Investment Income", r.NIIT.NII)
	line(buf, "NIIT Base", r.NIIT.Base)
	line(buf, "NIIT", r.NIIT.Tax)
	buf.WriteString("\n")

	buf.WriteString(sectionStyle.Render("FOREIGN TAX CREDIT") + "\n")
	line(buf, "Foreign-Source Gross", r.FTC.ForeignGross)
	fmt.Fprintf(buf, "  %-26s %18s\n", "Foreign Ratio", FormatPercentage(r.FTC.ForeignRatio.Mul(decimal.NewFromInt(100))))
	line(buf, "Limit", r.FTC.Limit)
	line(buf, "Available", r.FTC.Available)
	line(buf, "Allowed", r.FTC.Allowed)
	line(buf, "Unused", r.FTC.Unused)
	buf.WriteString("\n")

	buf.WriteString(sectionStyle.Render("SUMMARY") + "\n")
	line(buf, "Final Tax", r.FinalTax)
	fmt.Fprintf(buf, "  %-26s %18s\n", "Effective Rate", FormatPercentage(r.EffectiveRatePct))
	line(buf, "After-Tax Income", r.AfterTaxIncome)
	buf.WriteString("\n")
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-26s %18s\n", label, FormatCurrency(amount))
}
