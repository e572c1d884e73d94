package calculation

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Ordinary income uses the progressive bracket table of the active filing
//    configuration. No inflation indexing is applied.
//
// 2. Preferential income (net long-term gains and qualified dividends) is
//    stacked on top of taxable ordinary income and taxed at 0/15/20%.
//
// 3. NIIT is a flat 3.8% surtax and is never reduced by the foreign tax credit.

var (
	// PreferentialRateFifteen is the middle preferential rate.
	PreferentialRateFifteen = decimal.NewFromFloat(0.15)
	// PreferentialRateTwenty is the top preferential rate.
	PreferentialRateTwenty = decimal.NewFromFloat(0.20)
	// NIITRate is the net investment income tax rate.
	NIITRate = decimal.NewFromFloat(0.038)
)

// CalculateBracketTax applies a marginal-rate table to a taxable amount.
// Each bracket taxes only the slice between the previous upper bound and its
// own; the final bracket is unbounded.
func CalculateBracketTax(taxable decimal.Decimal, table domain.BracketTable) decimal.Decimal {
	remaining := decimal.Max(decimal.Zero, taxable)
	lower := decimal.Zero
	tax := decimal.Zero

	for _, bracket := range table {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		span := remaining
		if !bracket.Unbounded {
			width := bracket.UpperBound.Sub(lower)
			if width.LessThanOrEqual(decimal.Zero) {
				continue
			}
			span = decimal.Min(remaining, width)
			lower = bracket.UpperBound
		}
		tax = tax.Add(span.Mul(bracket.Rate))
		remaining = remaining.Sub(span)
	}

	return tax
}

// CalculatePreferentialStacking splits taxable preferential income across the
// 0%, 15% and 20% bands. Taxable ordinary income fills the lower bands first.
func CalculatePreferentialStacking(taxableOrdinary, taxablePreferential decimal.Decimal, thresholds domain.ThresholdPair) domain.StackingResult {
	if taxablePreferential.LessThanOrEqual(decimal.Zero) {
		return domain.StackingResult{
			AtZero:    decimal.Zero,
			AtFifteen: decimal.Zero,
			AtTwenty:  decimal.Zero,
			Tax:       decimal.Zero,
		}
	}

	zeroRoom := decimal.Max(decimal.Zero, thresholds.ZeroRateCeiling.Sub(taxableOrdinary))
	atZero := decimal.Min(taxablePreferential, zeroRoom)

	fifteenRoom := decimal.Max(decimal.Zero, thresholds.FifteenRateCeiling.Sub(taxableOrdinary).Sub(atZero))
	atFifteen := decimal.Min(taxablePreferential.Sub(atZero), fifteenRoom)

	atTwenty := taxablePreferential.Sub(atZero).Sub(atFifteen)
	tax := atFifteen.Mul(PreferentialRateFifteen).Add(atTwenty.Mul(PreferentialRateTwenty))

	return domain.StackingResult{
		AtZero:    atZero,
		AtFifteen: atFifteen,
		AtTwenty:  atTwenty,
		Tax:       tax,
	}
}
