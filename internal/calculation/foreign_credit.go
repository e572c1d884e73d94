package calculation

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// ForeignTaxCreditInput gathers what the limitation needs from a scenario
// and from the regular tax computation.
type ForeignTaxCreditInput struct {
	Totals           map[domain.Category]decimal.Decimal
	USSource         map[domain.Category]decimal.Decimal
	WorldwideTaxable decimal.Decimal
	RegularTax       decimal.Decimal
	ForeignTaxesPaid decimal.Decimal
	Carryover        decimal.Decimal
}

// NewForeignTaxCreditInput builds the input from a scenario.
func NewForeignTaxCreditInput(s domain.ScenarioInputs, worldwideTaxable, regularTax decimal.Decimal) ForeignTaxCreditInput {
	in := ForeignTaxCreditInput{
		Totals:           make(map[domain.Category]decimal.Decimal, len(domain.Categories)),
		USSource:         make(map[domain.Category]decimal.Decimal, len(domain.Categories)),
		WorldwideTaxable: worldwideTaxable,
		RegularTax:       regularTax,
		ForeignTaxesPaid: s.ForeignTaxesPaid,
		Carryover:        s.FTCCarryover,
	}
	for _, c := range domain.Categories {
		in.Totals[c] = s.Total(c)
		in.USSource[c] = s.USSource(c)
	}
	return in
}

// CalculateForeignTaxCredit applies a single-basket proportional limitation.
// Taxable income is allocated to foreign sources by the ratio of foreign to
// worldwide gross income, and the credit is bounded by the share of regular
// tax on that income, by the credit available and by regular tax itself.
//
// A category whose US-source amount exceeds its total contributes a negative
// foreign amount; it is not clamped here.
func CalculateForeignTaxCredit(in ForeignTaxCreditInput) domain.FTCResult {
	byCategory := make(map[domain.Category]decimal.Decimal, len(domain.Categories))
	foreignGross := decimal.Zero
	worldwideGross := decimal.Zero
	for _, c := range domain.Categories {
		total := in.Totals[c]
		foreign := total.Sub(in.USSource[c])
		byCategory[c] = foreign
		foreignGross = foreignGross.Add(foreign)
		worldwideGross = worldwideGross.Add(total)
	}
	worldwideGross = decimal.Max(decimal.Zero, worldwideGross)

	ratio := decimal.Zero
	if worldwideGross.IsPositive() {
		ratio = decimal.Max(decimal.Zero, foreignGross).Div(worldwideGross)
	}

	approxForeignTaxable := in.WorldwideTaxable.Mul(ratio)

	limit := decimal.Zero
	if in.WorldwideTaxable.IsPositive() {
		limit = in.RegularTax.
			Mul(decimal.Min(approxForeignTaxable, in.WorldwideTaxable)).
			Div(in.WorldwideTaxable)
	}

	available := decimal.Max(decimal.Zero, in.ForeignTaxesPaid.Add(in.Carryover))
	allowed := decimal.Min(decimal.Max(decimal.Zero, limit), available, in.RegularTax)

	return domain.FTCResult{
		ForeignGross:         foreignGross,
		ForeignByCategory:    byCategory,
		WorldwideGross:       worldwideGross,
		ForeignRatio:         ratio,
		WorldwideTaxable:     in.WorldwideTaxable,
		ApproxForeignTaxable: approxForeignTaxable,
		Limit:                limit,
		Available:            available,
		Allowed:              allowed,
		Unused:               decimal.Max(decimal.Zero, available.Sub(allowed)),
	}
}
