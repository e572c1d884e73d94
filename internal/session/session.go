// Package session owns the caller-side state of an interactive run: the
// scenario store, the active scenario and its most recent result.
package session

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
)

// ScenarioStore maps scenario identifiers to sanitized inputs.
type ScenarioStore struct {
	scenarios map[string]domain.ScenarioInputs
	order     []string
}

// NewScenarioStore creates a store from named scenarios, sanitizing each.
func NewScenarioStore(named []domain.NamedScenario) *ScenarioStore {
	st := &ScenarioStore{scenarios: make(map[string]domain.ScenarioInputs, len(named))}
	for _, n := range named {
		st.Put(n.ID, n.Inputs)
	}
	return st
}

// Put stores a sanitized copy of inputs under id.
func (st *ScenarioStore) Put(id string, in domain.ScenarioInputs) {
	if _, ok := st.scenarios[id]; !ok {
		st.order = append(st.order, id)
	}
	st.scenarios[id] = config.Sanitize(in)
}

// Get returns the stored inputs for id.
func (st *ScenarioStore) Get(id string) (domain.ScenarioInputs, bool) {
	in, ok := st.scenarios[id]
	return in, ok
}

// IDs lists identifiers in insertion order.
func (st *ScenarioStore) IDs() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// SortedIDs lists identifiers alphabetically.
func (st *ScenarioStore) SortedIDs() []string {
	out := st.IDs()
	sort.Strings(out)
	return out
}

// Len returns the number of stored scenarios.
func (st *ScenarioStore) Len() int { return len(st.order) }

// Session pairs a store with one active scenario. It is not safe for
// concurrent use; callers serialize switches and recalculations.
type Session struct {
	Engine        *calculation.CalculationEngine
	Configuration domain.FilingConfiguration
	Store         *ScenarioStore

	active string
	result *domain.TaxResult
}

// New creates a session and computes the initial active scenario.
func New(engine *calculation.CalculationEngine, fc domain.FilingConfiguration, store *ScenarioStore, activeID string) (*Session, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("session requires at least one scenario")
	}
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if activeID == "" {
		activeID = store.IDs()[0]
	}
	if _, ok := store.Get(activeID); !ok {
		return nil, fmt.Errorf("scenario %s not found", activeID)
	}
	s := &Session{Engine: engine, Configuration: fc, Store: store, active: activeID}
	if _, err := s.Recalculate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ActiveID returns the active scenario identifier.
func (s *Session) ActiveID() string { return s.active }

// Active returns the stored inputs of the active scenario.
func (s *Session) Active() domain.ScenarioInputs {
	in, _ := s.Store.Get(s.active)
	return in
}

// Result returns the most recent result of the active scenario. It is nil
// after a failed recalculation.
func (s *Session) Result() *domain.TaxResult { return s.result }

// Edit stores sanitized edits for the active scenario without recomputing.
func (s *Session) Edit(edited domain.ScenarioInputs) {
	s.Store.Put(s.active, edited)
}

// Recalculate recomputes the active scenario. On failure the previous
// result is discarded so a stale result is never presented as current.
func (s *Session) Recalculate() (*domain.TaxResult, error) {
	res, err := s.Engine.Calculate(s.active, s.Active(), s.Configuration)
	if err != nil {
		s.result = nil
		return nil, err
	}
	s.result = res
	return res, nil
}

// Switch persists edited as the current scenario's values, then activates
// id and recomputes it.
func (s *Session) Switch(id string, edited domain.ScenarioInputs) (*domain.TaxResult, error) {
	if _, ok := s.Store.Get(id); !ok {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	s.Store.Put(s.active, edited)
	s.active = id
	return s.Recalculate()
}

// SwitchTo activates id keeping the current scenario's stored values.
func (s *Session) SwitchTo(id string) (*domain.TaxResult, error) {
	return s.Switch(id, s.Active())
}

// SetConfiguration replaces the filing configuration and recomputes.
func (s *Session) SetConfiguration(fc domain.FilingConfiguration) (*domain.TaxResult, error) {
	s.Configuration = fc
	return s.Recalculate()
}

// CalculateAll computes every stored scenario in insertion order.
func (s *Session) CalculateAll() ([]domain.TaxResult, error) {
	out := make([]domain.TaxResult, 0, s.Store.Len())
	for _, id := range s.Store.IDs() {
		in, _ := s.Store.Get(id)
		res, err := s.Engine.Calculate(id, in, s.Configuration)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}
