package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rptax/internal/output"
	"github.com/rgehrsitz/rptax/internal/tui/components"
)

// View renders the current state (required by tea.Model interface)
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("rptax  %s  active: %s",
		m.session.Configuration.Name, m.session.ActiveID())))
	b.WriteString("\n")
	if cards := components.HeadlineCards(m.session.Result(), m.previous); cards != nil {
		b.WriteString(components.MetricGrid(cards, len(cards)))
		b.WriteString("\n")
	}

	left := PaneStyle.Render(m.table.View())
	right := PaneStyle.Render(m.resultView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.fieldsView()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	for _, w := range m.warnings {
		b.WriteString(InfoStyle.Render("! "+w) + "\n")
	}

	help := []string{}
	for _, k := range []struct{ key, desc string }{
		{m.keys.Switch.Help().Key, m.keys.Switch.Help().Desc},
		{m.keys.Edit.Help().Key, m.keys.Edit.Help().Desc},
		{m.keys.NextField.Help().Key, m.keys.NextField.Help().Desc},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	} {
		help = append(help, k.key+" "+k.desc)
	}
	b.WriteString(HelpStyle.Render(strings.Join(help, " • ")))

	return b.String()
}

func (m Model) resultView() string {
	r := m.session.Result()
	if r == nil {
		return ErrorStyle.Render("no result")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Gross Income", output.FormatCurrency(r.GrossIncome)},
		{"AGI", output.FormatCurrency(r.AGI)},
		{"Taxable Income", output.FormatCurrency(r.TaxableIncome)},
		{"Ordinary Tax", output.FormatCurrency(r.OrdinaryTax)},
		{"Preferential Tax", output.FormatCurrency(r.PreferentialTax)},
		{"NIIT", output.FormatCurrency(r.NIIT.Tax)},
		{"Foreign Tax Credit", output.FormatCurrency(r.FTC.Allowed)},
		{"Loss Carryover", output.FormatCurrency(r.Netting.CapLossCarryover)},
		{"Final Tax", output.FormatCurrency(r.FinalTax)},
		{"Effective Rate", output.FormatPercentage(r.EffectiveRatePct)},
		{"After-Tax Income", output.FormatCurrency(r.AfterTaxIncome)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			MetricLabelStyle.Render(row.label),
			MetricValueStyle.Render(row.value)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) fieldsView() string {
	lines := make([]string, 0, len(EditableFields))
	for i, field := range EditableFields {
		value := "unset"
		if v, ok := m.record[field]; ok {
			value = fmt.Sprint(v)
			if d, err := decimal.NewFromString(value); err == nil {
				value = output.FormatCurrency(d)
			}
		}

		line := fmt.Sprintf("%-20s %s", field, value)
		if i == m.fieldIdx {
			if m.editing {
				line = fmt.Sprintf("%-20s %s", field, m.input.View())
			}
			lines = append(lines, SelectedFieldStyle.Render("> "+line))
			continue
		}
		lines = append(lines, FieldStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}
