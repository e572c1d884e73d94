package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/output"
)

var (
	colorLabel  = lipgloss.Color("#626262")
	colorBorder = lipgloss.Color("#3C3C3C")
	colorGood   = lipgloss.Color("#04B575")
	colorBad    = lipgloss.Color("#FF4672")

	labelStyle = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// MetricCard displays a single headline number with an optional change
// against a previous value.
type MetricCard struct {
	Label string
	Value string
	Trend *Trend
	Width int
}

// Trend is the signed change of a metric. Favorable picks the color: less
// tax is favorable, less after-tax income is not.
type Trend struct {
	Up        bool
	Favorable bool
	Change    string // e.g. "$5,234.00" or "2.30 pts"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(up, favorable bool, change string) *MetricCard {
	m.Trend = &Trend{Up: up, Favorable: favorable, Change: change}
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) trend() string {
	if m.Trend == nil {
		return ""
	}
	arrow := "▼"
	if m.Trend.Up {
		arrow = "▲"
	}
	color := colorBad
	if m.Trend.Favorable {
		color = colorGood
	}
	return lipgloss.NewStyle().Foreground(color).Render(arrow + " " + m.Trend.Change)
}

// Render returns the bordered card.
func (m *MetricCard) Render() string {
	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if t := m.trend(); t != "" {
		content += "\n" + t
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	s := labelStyle.Render(m.Label+":") + " " + valueStyle.Render(m.Value)
	if t := m.trend(); t != "" {
		s += " " + t
	}
	return s
}

// MetricGrid renders cards left to right, wrapping after columns cards.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, row []string
	for i, card := range cards {
		row = append(row, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// HeadlineCards builds the final tax, effective rate and after-tax income
// cards for current. When previous is non-nil each card carries its change
// from previous; unchanged metrics get no trend.
func HeadlineCards(current, previous *domain.TaxResult) []*MetricCard {
	if current == nil {
		return nil
	}

	finalTax := NewMetricCard("Final Tax", output.FormatCurrency(current.FinalTax))
	rate := NewMetricCard("Effective Rate", output.FormatPercentage(current.EffectiveRatePct))
	afterTax := NewMetricCard("After-Tax Income", output.FormatCurrency(current.AfterTaxIncome))

	if previous != nil {
		if delta := current.FinalTax.Sub(previous.FinalTax); !delta.IsZero() {
			finalTax.WithTrend(delta.IsPositive(), delta.IsNegative(), output.FormatCurrency(delta.Abs()))
		}
		if delta := current.EffectiveRatePct.Sub(previous.EffectiveRatePct); !delta.IsZero() {
			rate.WithTrend(delta.IsPositive(), delta.IsNegative(), points(delta.Abs()))
		}
		if delta := current.AfterTaxIncome.Sub(previous.AfterTaxIncome); !delta.IsZero() {
			afterTax.WithTrend(delta.IsPositive(), delta.IsPositive(), output.FormatCurrency(delta.Abs()))
		}
	}
	return []*MetricCard{finalTax, rate, afterTax}
}

func points(d decimal.Decimal) string {
	return fmt.Sprintf("%s pts", d.StringFixed(2))
}
