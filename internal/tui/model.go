// Package tui is an interactive scenario browser. One scenario is active at
// a time; its inputs can be edited field by field and every change is
// recomputed immediately.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/output"
	"github.com/rgehrsitz/rptax/internal/session"
)

// EditableFields lists the scenario fields in editor order.
var EditableFields = []string{
	config.FieldShortTerm,
	config.FieldLongTerm,
	config.FieldDividends,
	config.FieldQualifiedDividends,
	config.FieldInterest,
	config.FieldOther,
	config.FieldUSShortTerm,
	config.FieldUSLongTerm,
	config.FieldUSDividends,
	config.FieldUSInterest,
	config.FieldUSOther,
	config.FieldForeignTaxesPaid,
	config.FieldFTCCarryover,
	config.FieldStandardDeduction,
	config.FieldNIITThreshold,
	config.FieldCapitalLossCap,
}

// Model represents the entire application state
type Model struct {
	session *session.Session
	keys    keyMap

	table table.Model
	input textinput.Model

	// pending values of the active scenario as edited in the form
	record   map[string]any
	fieldIdx int
	editing  bool

	// result of the active scenario before the last applied edit
	previous *domain.TaxResult

	warnings []string
	err      error

	width  int
	height int
}

// NewModel creates a model over an initialized session.
func NewModel(s *session.Session) Model {
	columns := []table.Column{
		{Title: "Scenario", Width: 10},
		{Title: "Final Tax", Width: 16},
		{Title: "Rate", Width: 9},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 32

	m := Model{
		session: s,
		keys:    defaultKeyMap(),
		table:   t,
		input:   in,
		width:   100,
		height:  30,
	}
	m.resetRecord()
	m.refreshRows()
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the underlying session.
func (m Model) Session() *session.Session { return m.session }

func (m *Model) resetRecord() {
	m.record = config.RecordFromInputs(m.session.ActiveID(), m.session.Active())
}

func (m *Model) refreshRows() {
	results, err := m.session.CalculateAll()
	if err != nil {
		m.err = err
		return
	}
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		id := r.ScenarioID
		if id == m.session.ActiveID() {
			id = "* " + id
		}
		rows = append(rows, table.Row{id, output.FormatCurrency(r.FinalTax), output.FormatPercentage(r.EffectiveRatePct)})
	}
	m.table.SetRows(rows)
}

func (m Model) currentField() string {
	return EditableFields[m.fieldIdx]
}
