package calculation

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// NetCapitalGains nets signed short-term and long-term amounts. Losses in one
// holding-period class offset gains in the other before any loss is deducted
// against ordinary income, and the deduction is capped at lossCap.
func NetCapitalGains(shortTerm, longTerm, lossCap decimal.Decimal) domain.NettingResult {
	result := domain.NettingResult{
		OrdinaryCapGain:  decimal.Zero,
		PrefCapGain:      decimal.Zero,
		CapLossDeduction: decimal.Zero,
		CapLossCarryover: decimal.Zero,
	}
	lossCap = decimal.Max(decimal.Zero, lossCap)

	// Both gains: different rate classes, nothing to net.
	if !shortTerm.IsNegative() && !longTerm.IsNegative() {
		result.OrdinaryCapGain = shortTerm
		result.PrefCapGain = longTerm
		return result
	}

	net := shortTerm.Add(longTerm)
	bothLosses := !shortTerm.IsPositive() && !longTerm.IsPositive()
	if bothLosses || net.IsNegative() {
		netLoss := net.Abs()
		result.CapLossDeduction = decimal.Min(lossCap, netLoss)
		result.CapLossCarryover = decimal.Max(decimal.Zero, netLoss.Sub(result.CapLossDeduction))
		return result
	}

	// Mixed signs with a net gain keep the character of the surviving gain.
	if shortTerm.IsPositive() {
		result.OrdinaryCapGain = net
	} else {
		result.PrefCapGain = net
	}
	return result
}
