package domain

import (
	"github.com/shopspring/decimal"
)

// NettingResult is the outcome of short/long-term capital netting. The gain
// path sets at most the two gain fields; the loss path sets only the
// deduction and carryover.
type NettingResult struct {
	OrdinaryCapGain  decimal.Decimal `json:"ordinary_cap_gain"`
	PrefCapGain      decimal.Decimal `json:"pref_cap_gain"`
	CapLossDeduction decimal.Decimal `json:"cap_loss_deduction"`
	CapLossCarryover decimal.Decimal `json:"cap_loss_carryover"`
}

// StackingResult splits preferential income across the 0/15/20% bands.
type StackingResult struct {
	AtZero    decimal.Decimal `json:"at_zero"`
	AtFifteen decimal.Decimal `json:"at_fifteen"`
	AtTwenty  decimal.Decimal `json:"at_twenty"`
	Tax       decimal.Decimal `json:"tax"`
}

// NIITResult carries the net investment income tax and its inputs.
type NIITResult struct {
	Threshold  decimal.Decimal `json:"threshold"`
	MAGI       decimal.Decimal `json:"magi"`
	MAGIExcess decimal.Decimal `json:"magi_excess"`
	NII        decimal.Decimal `json:"nii"`
	Base       decimal.Decimal `json:"base"`
	Tax        decimal.Decimal `json:"tax"`
}

// FTCResult carries the foreign tax credit limitation.
type FTCResult struct {
	ForeignGross         decimal.Decimal              `json:"foreign_gross"`
	ForeignByCategory    map[Category]decimal.Decimal `json:"foreign_by_category"`
	WorldwideGross       decimal.Decimal              `json:"worldwide_gross"`
	ForeignRatio         decimal.Decimal              `json:"foreign_ratio"`
	WorldwideTaxable     decimal.Decimal              `json:"worldwide_taxable"`
	ApproxForeignTaxable decimal.Decimal              `json:"approx_foreign_taxable"`
	Limit                decimal.Decimal              `json:"limit"`
	Available            decimal.Decimal              `json:"available"`
	Allowed              decimal.Decimal              `json:"allowed"`
	Unused               decimal.Decimal              `json:"unused"`
}

// TaxResult is the complete outcome for one scenario. It is produced in a
// single call and never updated afterwards.
type TaxResult struct {
	ScenarioID    string `json:"scenario_id"`
	Configuration string `json:"configuration"`

	GrossIncome        decimal.Decimal `json:"gross_income"`
	QualifiedDividends decimal.Decimal `json:"qualified_dividends"`
	OrdinaryDividends  decimal.Decimal `json:"ordinary_dividends"`

	Netting NettingResult `json:"netting"`

	OrdinaryIncome     decimal.Decimal `json:"ordinary_income"`
	PreferentialIncome decimal.Decimal `json:"preferential_income"`
	AGI                decimal.Decimal `json:"agi"`
	StandardDeduction  decimal.Decimal `json:"standard_deduction"`

	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	TaxableOrdinary     decimal.Decimal `json:"taxable_ordinary"`
	TaxablePreferential decimal.Decimal `json:"taxable_preferential"`

	OrdinaryTax     decimal.Decimal `json:"ordinary_tax"`
	Preferential    StackingResult  `json:"preferential"`
	PreferentialTax decimal.Decimal `json:"preferential_tax"`
	RegularTax      decimal.Decimal `json:"regular_tax"`

	NIIT NIITResult `json:"niit"`
	FTC  FTCResult  `json:"ftc"`

	FinalTax         decimal.Decimal `json:"final_tax"`
	EffectiveRatePct decimal.Decimal `json:"effective_rate_pct"`
	AfterTaxIncome   decimal.Decimal `json:"after_tax_income"`
}
