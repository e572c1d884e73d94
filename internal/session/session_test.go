package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func filing(t *testing.T) domain.FilingConfiguration {
	t.Helper()
	fc, err := config.BuiltinRegistry().Get(config.Config2026MFJ)
	require.NoError(t, err)
	return fc
}

func testStore() *ScenarioStore {
	return NewScenarioStore([]domain.NamedScenario{
		{ID: "short", Inputs: domain.ScenarioInputs{
			ShortTerm:         d(800000),
			USShortTerm:       d(800000),
			StandardDeduction: d(32200),
			NIITThreshold:     d(250000),
			CapitalLossCap:    d(3000),
		}},
		{ID: "long", Inputs: domain.ScenarioInputs{
			LongTerm:          d(800000),
			USLongTerm:        d(800000),
			StandardDeduction: d(32200),
			NIITThreshold:     d(250000),
			CapitalLossCap:    d(3000),
		}},
	})
}

func TestScenarioStore(t *testing.T) {
	st := testStore()
	st.Put("alpha", domain.ScenarioInputs{Interest: d(-5), USInterest: d(10)})

	assert.Equal(t, 3, st.Len())
	assert.Equal(t, []string{"short", "long", "alpha"}, st.IDs())
	assert.Equal(t, []string{"alpha", "long", "short"}, st.SortedIDs())

	in, ok := st.Get("alpha")
	require.True(t, ok)
	assert.True(t, in.Interest.IsZero(), "stored inputs are sanitized")
	assert.True(t, in.USInterest.IsZero())

	_, ok = st.Get("missing")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	s, err := New(nil, filing(t), testStore(), "")
	require.NoError(t, err)

	assert.Equal(t, "short", s.ActiveID())
	require.NotNil(t, s.Result())
	assert.Equal(t, "227168.50", s.Result().FinalTax.StringFixed(2))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, filing(t), NewScenarioStore(nil), "")
	assert.Error(t, err)

	_, err = New(nil, filing(t), nil, "")
	assert.Error(t, err)

	_, err = New(nil, filing(t), testStore(), "missing")
	assert.Error(t, err)
}

func TestSwitch_PersistsEditsBeforeActivating(t *testing.T) {
	s, err := New(calculation.NewCalculationEngine(), filing(t), testStore(), "short")
	require.NoError(t, err)

	edited := s.Active()
	edited.ShortTerm = d(500000)
	edited.USShortTerm = d(900000)

	res, err := s.Switch("long", edited)
	require.NoError(t, err)
	assert.Equal(t, "long", s.ActiveID())
	assert.Equal(t, "long", res.ScenarioID)

	stored, _ := s.Store.Get("short")
	assert.True(t, stored.ShortTerm.Equal(d(500000)))
	assert.True(t, stored.USShortTerm.Equal(d(500000)), "edits are sanitized on save")

	res, err = s.SwitchTo("short")
	require.NoError(t, err)
	assert.True(t, res.GrossIncome.Equal(d(500000)))
}

func TestSwitch_UnknownScenario(t *testing.T) {
	s, err := New(nil, filing(t), testStore(), "short")
	require.NoError(t, err)

	edited := s.Active()
	edited.ShortTerm = d(1)

	_, err = s.Switch("missing", edited)
	assert.Error(t, err)
	assert.Equal(t, "short", s.ActiveID())

	stored, _ := s.Store.Get("short")
	assert.True(t, stored.ShortTerm.Equal(d(800000)), "a failed switch must not save edits")
}

func TestEditAndRecalculate(t *testing.T) {
	s, err := New(nil, filing(t), testStore(), "long")
	require.NoError(t, err)
	before := s.Result().FinalTax

	edited := s.Active()
	edited.LongTerm = d(400000)
	edited.USLongTerm = d(400000)
	s.Edit(edited)
	assert.True(t, s.Result().FinalTax.Equal(before), "Edit does not recompute")

	res, err := s.Recalculate()
	require.NoError(t, err)
	assert.True(t, res.FinalTax.LessThan(before))
	assert.Same(t, res, s.Result())
}

// faultyLogger fails on the first debug message.
type faultyLogger struct{ calculation.NopLogger }

func (faultyLogger) Debugf(string, ...any) { panic("logger exploded") }

func TestRecalculate_FailureClearsResult(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	s, err := New(engine, filing(t), testStore(), "short")
	require.NoError(t, err)
	require.NotNil(t, s.Result())

	engine.SetLogger(faultyLogger{})
	engine.Debug = true

	_, err = s.Recalculate()
	var compErr *calculation.ComputationError
	assert.ErrorAs(t, err, &compErr)
	assert.Nil(t, s.Result())
}

func TestCalculateAll(t *testing.T) {
	s, err := New(nil, filing(t), testStore(), "long")
	require.NoError(t, err)

	results, err := s.CalculateAll()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "short", results[0].ScenarioID)
	assert.Equal(t, "long", results[1].ScenarioID)
}
