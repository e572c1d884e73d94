package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	fc, err := config.BuiltinRegistry().Get(config.Config2026MFJ)
	require.NoError(t, err)

	first := domain.HeatmapPoint{ID: "P1", Income: decimal.NewFromInt(800000), ShortTermPct: decimal.NewFromInt(100)}
	second := domain.HeatmapPoint{ID: "P2", Income: decimal.NewFromInt(600000), ShortTermPct: decimal.Zero}
	store := session.NewScenarioStore([]domain.NamedScenario{
		{ID: first.ID, Inputs: first.Inputs(fc)},
		{ID: second.ID, Inputs: second.Inputs(fc)},
	})

	s, err := session.New(calculation.NewCalculationEngine(), fc, store, "")
	require.NoError(t, err)
	return NewModel(s)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update should return a Model")
	return model
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, "P1", m.session.ActiveID(), "Should activate the first scenario")
	assert.Len(t, m.table.Rows(), 2, "Should list every scenario")
	assert.Equal(t, "* P1", m.table.Rows()[0][0], "Should mark the active row")
	assert.Equal(t, "$227,168.50", m.table.Rows()[0][1], "Should show final tax")
	assert.Contains(t, m.View(), "active: P1")
}

func TestModel_SwitchScenario(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "P2", m.session.ActiveID(), "Should switch to the selected scenario")
	require.NotNil(t, m.session.Result())
	assert.Equal(t, "P2", m.session.Result().ScenarioID)
	assert.Equal(t, "* P2", m.table.Rows()[1][0])
	assert.Equal(t, "P1", m.table.Rows()[0][0])
}

func TestModel_EditField(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, config.FieldLongTerm, m.currentField())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.True(t, m.editing, "Should enter edit mode")

	m.input.SetValue("100000")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing, "Should leave edit mode")
	assert.True(t, m.session.Active().LongTerm.Equal(decimal.NewFromInt(100000)), "Should store the edit")
	assert.Equal(t, "P1", m.session.ActiveID(), "Should keep the active scenario")
	assert.Nil(t, m.err)

	require.NotNil(t, m.previous, "Should remember the result before the edit")
	assert.True(t, m.session.Result().FinalTax.GreaterThan(m.previous.FinalTax))
	assert.Contains(t, m.View(), "▲", "Should show the tax increase")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.previous, "Switching scenarios should drop the trend")
}

func TestModel_EditSanitizesInput(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m.input.SetValue("-5000")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	active := m.session.Active()
	assert.True(t, active.ShortTerm.Equal(decimal.NewFromInt(-5000)))
	assert.True(t, active.USShortTerm.IsZero(), "US short-term should clamp to zero for a loss")
}

func TestModel_CancelEdit(t *testing.T) {
	m := newTestModel(t)
	before := m.session.Active()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m.input.SetValue("1")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.True(t, before.Equal(m.session.Active()), "Cancel should not change inputs")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
