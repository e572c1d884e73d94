package domain

import (
	"github.com/shopspring/decimal"
)

// Category identifies one gross income category.
type Category string

const (
	CategoryShortTerm Category = "short_term"
	CategoryLongTerm  Category = "long_term"
	CategoryDividends Category = "dividends"
	CategoryInterest  Category = "interest"
	CategoryOther     Category = "other"
)

// Categories lists every income category in a fixed order.
var Categories = []Category{
	CategoryShortTerm,
	CategoryLongTerm,
	CategoryDividends,
	CategoryInterest,
	CategoryOther,
}

// QualifiedDividends is either unset or a concrete amount. An unset value
// resolves to the US-source dividends at aggregation time.
type QualifiedDividends struct {
	amount decimal.Decimal
	set    bool
}

// UnsetQualified returns the unset variant.
func UnsetQualified() QualifiedDividends { return QualifiedDividends{} }

// QualifiedAmount returns the variant holding a concrete amount.
func QualifiedAmount(amount decimal.Decimal) QualifiedDividends {
	return QualifiedDividends{amount: amount, set: true}
}

// IsSet reports whether a concrete amount was supplied.
func (q QualifiedDividends) IsSet() bool { return q.set }

// Amount returns the concrete amount and whether one was supplied.
func (q QualifiedDividends) Amount() (decimal.Decimal, bool) { return q.amount, q.set }

// Resolve returns the concrete amount, or fallback when unset.
func (q QualifiedDividends) Resolve(fallback decimal.Decimal) decimal.Decimal {
	if q.set {
		return q.amount
	}
	return fallback
}

// Equal compares two values including their set state.
func (q QualifiedDividends) Equal(o QualifiedDividends) bool {
	if q.set != o.set {
		return false
	}
	return !q.set || q.amount.Equal(o.amount)
}

// ScenarioInputs holds the gross amounts of one household scenario together
// with the scalar configuration it is evaluated under. Short- and long-term
// totals are signed; a negative amount is a loss.
type ScenarioInputs struct {
	ShortTerm          decimal.Decimal
	LongTerm           decimal.Decimal
	Dividends          decimal.Decimal
	QualifiedDividends QualifiedDividends
	Interest           decimal.Decimal
	Other              decimal.Decimal

	USShortTerm decimal.Decimal
	USLongTerm  decimal.Decimal
	USDividends decimal.Decimal
	USInterest  decimal.Decimal
	USOther     decimal.Decimal

	ForeignTaxesPaid  decimal.Decimal
	FTCCarryover      decimal.Decimal
	StandardDeduction decimal.Decimal
	NIITThreshold     decimal.Decimal
	CapitalLossCap    decimal.Decimal
}

// Total returns the gross total for a category.
func (s ScenarioInputs) Total(c Category) decimal.Decimal {
	switch c {
	case CategoryShortTerm:
		return s.ShortTerm
	case CategoryLongTerm:
		return s.LongTerm
	case CategoryDividends:
		return s.Dividends
	case CategoryInterest:
		return s.Interest
	case CategoryOther:
		return s.Other
	}
	return decimal.Zero
}

// USSource returns the US-source sub-amount for a category.
func (s ScenarioInputs) USSource(c Category) decimal.Decimal {
	switch c {
	case CategoryShortTerm:
		return s.USShortTerm
	case CategoryLongTerm:
		return s.USLongTerm
	case CategoryDividends:
		return s.USDividends
	case CategoryInterest:
		return s.USInterest
	case CategoryOther:
		return s.USOther
	}
	return decimal.Zero
}

// CategoryTotals returns every category total in Categories order.
func (s ScenarioInputs) CategoryTotals() []decimal.Decimal {
	out := make([]decimal.Decimal, len(Categories))
	for i, c := range Categories {
		out[i] = s.Total(c)
	}
	return out
}

// Equal reports whether two scenarios carry identical values.
func (s ScenarioInputs) Equal(o ScenarioInputs) bool {
	pairs := [][2]decimal.Decimal{
		{s.ShortTerm, o.ShortTerm}, {s.LongTerm, o.LongTerm},
		{s.Dividends, o.Dividends}, {s.Interest, o.Interest}, {s.Other, o.Other},
		{s.USShortTerm, o.USShortTerm}, {s.USLongTerm, o.USLongTerm},
		{s.USDividends, o.USDividends}, {s.USInterest, o.USInterest}, {s.USOther, o.USOther},
		{s.ForeignTaxesPaid, o.ForeignTaxesPaid}, {s.FTCCarryover, o.FTCCarryover},
		{s.StandardDeduction, o.StandardDeduction}, {s.NIITThreshold, o.NIITThreshold},
		{s.CapitalLossCap, o.CapitalLossCap},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			return false
		}
	}
	return s.QualifiedDividends.Equal(o.QualifiedDividends)
}

// NamedScenario pairs a scenario with the identifier it is stored under.
type NamedScenario struct {
	ID     string
	Inputs ScenarioInputs
}
