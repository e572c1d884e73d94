package config

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// Sanitize enforces the cross-field invariants of a scenario:
//
//   - dividend, interest and other totals are floored at 0; capital gain
//     totals keep their sign
//   - each US-source amount is clamped into [0, total]; the short-term one
//     is forced to 0 unless the short-term total is positive, and a negative
//     long-term total caps its US-source amount at that total
//   - qualified dividends, when set, are clamped into [0, dividends]
//   - scalar configuration values are floored at 0
//
// Sanitize is idempotent.
func Sanitize(in domain.ScenarioInputs) domain.ScenarioInputs {
	out := in

	out.Dividends = floorZero(in.Dividends)
	out.Interest = floorZero(in.Interest)
	out.Other = floorZero(in.Other)

	if in.ShortTerm.IsPositive() {
		out.USShortTerm = clamp(in.USShortTerm, out.ShortTerm)
	} else {
		out.USShortTerm = decimal.Zero
	}
	out.USLongTerm = clamp(in.USLongTerm, out.LongTerm)
	out.USDividends = clamp(in.USDividends, out.Dividends)
	out.USInterest = clamp(in.USInterest, out.Interest)
	out.USOther = clamp(in.USOther, out.Other)

	if q, ok := in.QualifiedDividends.Amount(); ok {
		out.QualifiedDividends = domain.QualifiedAmount(clamp(q, out.Dividends))
	}

	out.ForeignTaxesPaid = floorZero(in.ForeignTaxesPaid)
	out.FTCCarryover = floorZero(in.FTCCarryover)
	out.StandardDeduction = floorZero(in.StandardDeduction)
	out.NIITThreshold = floorZero(in.NIITThreshold)
	out.CapitalLossCap = floorZero(in.CapitalLossCap)

	return out
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}

// clamp bounds v below by 0 and above by upper, in that order.
func clamp(v, upper decimal.Decimal) decimal.Decimal {
	return decimal.Min(floorZero(v), upper)
}
