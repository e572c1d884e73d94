package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rptax/internal/config"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input outside the field editor
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		row := m.table.SelectedRow()
		if row == nil {
			return m, nil
		}
		return m.switchTo(strings.TrimPrefix(row[0], "* ")), nil

	case key.Matches(msg, m.keys.NextField):
		m.fieldIdx = (m.fieldIdx + 1) % len(EditableFields)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.fieldIdx = (m.fieldIdx + len(EditableFields) - 1) % len(EditableFields)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		value := ""
		if v, ok := m.record[m.currentField()]; ok {
			value = fmt.Sprint(v)
		}
		m.input.SetValue(value)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleEditKey processes keyboard input while a field is being edited
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		m.editing = false
		m.input.Blur()
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			delete(m.record, m.currentField())
		} else {
			m.record[m.currentField()] = value
		}
		return m.applyEdits(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEdits stores the pending record as the active scenario's values and
// recomputes it.
func (m Model) applyEdits() Model {
	in, warnings := config.ParseScenarioRecord(m.record, m.session.Configuration)
	m.warnings = warnings
	m.previous = m.session.Result()
	m.session.Edit(in)
	_, m.err = m.session.Recalculate()
	m.resetRecord()
	m.refreshRows()
	return m
}

// switchTo persists the pending edits to the current scenario before
// activating id.
func (m Model) switchTo(id string) Model {
	if id == m.session.ActiveID() {
		return m
	}
	edited, warnings := config.ParseScenarioRecord(m.record, m.session.Configuration)
	m.warnings = warnings
	m.previous = nil
	_, m.err = m.session.Switch(id, edited)
	m.resetRecord()
	m.refreshRows()
	return m
}
