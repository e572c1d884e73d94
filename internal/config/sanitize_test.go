package config

import (
	"testing"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSanitize_FloorsNonCapitalTotals(t *testing.T) {
	out := Sanitize(domain.ScenarioInputs{
		Dividends:   d(-100),
		Interest:    d(-5),
		Other:       d(-1),
		USDividends: d(50),
	})

	assert.True(t, out.Dividends.IsZero(), "Should floor dividends")
	assert.True(t, out.Interest.IsZero(), "Should floor interest")
	assert.True(t, out.Other.IsZero(), "Should floor other income")
	assert.True(t, out.USDividends.IsZero(), "Should clamp US dividends to the floored total")
}

func TestSanitize_CapitalGainsKeepSign(t *testing.T) {
	out := Sanitize(domain.ScenarioInputs{
		ShortTerm:   d(-7000),
		LongTerm:    d(-5000),
		USShortTerm: d(3000),
		USLongTerm:  d(2000),
	})

	assert.Equal(t, "-7000", out.ShortTerm.String(), "Should keep short-term loss")
	assert.Equal(t, "-5000", out.LongTerm.String(), "Should keep long-term loss")
	assert.True(t, out.USShortTerm.IsZero(), "Should zero US short-term unless short-term is a gain")
	assert.Equal(t, "-5000", out.USLongTerm.String(), "Should cap US long-term at a negative total")
}

func TestSanitize_ClampsUSSource(t *testing.T) {
	out := Sanitize(domain.ScenarioInputs{
		ShortTerm:   d(1000),
		LongTerm:    d(2000),
		Interest:    d(300),
		USShortTerm: d(5000),
		USLongTerm:  d(-10),
		USInterest:  d(100),
	})

	assert.Equal(t, "1000", out.USShortTerm.String(), "Should cap at the total")
	assert.True(t, out.USLongTerm.IsZero(), "Should floor at zero")
	assert.Equal(t, "100", out.USInterest.String(), "Should keep values in range")
}

func TestSanitize_QualifiedDividends(t *testing.T) {
	set := Sanitize(domain.ScenarioInputs{Dividends: d(1000), QualifiedDividends: domain.QualifiedAmount(d(4000))})
	q, ok := set.QualifiedDividends.Amount()
	assert.True(t, ok, "Should stay set")
	assert.Equal(t, "1000", q.String(), "Should clamp to dividends")

	negative := Sanitize(domain.ScenarioInputs{Dividends: d(1000), QualifiedDividends: domain.QualifiedAmount(d(-1))})
	q, _ = negative.QualifiedDividends.Amount()
	assert.True(t, q.IsZero(), "Should floor at zero")

	unset := Sanitize(domain.ScenarioInputs{Dividends: d(1000)})
	assert.False(t, unset.QualifiedDividends.IsSet(), "Should leave unset values unset")
}

func TestSanitize_Scalars(t *testing.T) {
	out := Sanitize(domain.ScenarioInputs{
		ForeignTaxesPaid:  d(-1),
		FTCCarryover:      d(-2),
		StandardDeduction: d(-3),
		NIITThreshold:     d(-4),
		CapitalLossCap:    d(-5),
	})

	for _, v := range []decimal.Decimal{out.ForeignTaxesPaid, out.FTCCarryover, out.StandardDeduction, out.NIITThreshold, out.CapitalLossCap} {
		assert.True(t, v.IsZero(), "Should floor scalar values")
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []domain.ScenarioInputs{
		{ShortTerm: d(-290072), LongTerm: d(1031155), Dividends: d(22166), USLongTerm: d(2000000), USDividends: d(-1)},
		{ShortTerm: d(500), LongTerm: d(-900), USShortTerm: d(700), USLongTerm: d(300), QualifiedDividends: domain.QualifiedAmount(d(5))},
		{Dividends: d(-10), Interest: d(10), USInterest: d(11), StandardDeduction: d(-1)},
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		assert.True(t, once.Equal(twice), "Should be idempotent for %+v", in)
	}
}
