package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputationError reports an unexpected fault while computing one scenario.
// No partial result accompanies it.
type ComputationError struct {
	ScenarioID string
	Cause      any
}

func (e *ComputationError) Error() string {
	if e.ScenarioID == "" {
		return fmt.Sprintf("tax computation failed: %v", e.Cause)
	}
	return fmt.Sprintf("tax computation failed for scenario %s: %v", e.ScenarioID, e.Cause)
}

// Unwrap exposes the cause when it is an error.
func (e *ComputationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// CalculationEngine orchestrates netting, bracket tax, preferential stacking,
// NIIT and the foreign tax credit into a single TaxResult.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log intermediate quantities
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Calculate computes the full result for one sanitized scenario under a
// filing configuration. The scenario's own standard deduction and NIIT
// threshold are used; the configuration supplies brackets and thresholds.
func (ce *CalculationEngine) Calculate(id string, in domain.ScenarioInputs, fc domain.FilingConfiguration) (result *domain.TaxResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			ce.logger().Errorf("scenario %s: computation fault: %v", id, r)
			result = nil
			err = &ComputationError{ScenarioID: id, Cause: r}
		}
	}()

	res := ce.calculate(id, in, fc)
	return &res, nil
}

// CalculateHeatmapPoint computes a simplified (income, short-term %) point.
func (ce *CalculationEngine) CalculateHeatmapPoint(p domain.HeatmapPoint, fc domain.FilingConfiguration) (*domain.TaxResult, error) {
	return ce.Calculate(p.ID, p.Inputs(fc), fc)
}

func (ce *CalculationEngine) calculate(id string, in domain.ScenarioInputs, fc domain.FilingConfiguration) domain.TaxResult {
	log := ce.logger()

	qualified := in.QualifiedDividends.Resolve(in.USDividends)
	ordinaryDividends := in.Dividends.Sub(qualified)

	netting := NetCapitalGains(in.ShortTerm, in.LongTerm, in.CapitalLossCap)

	ordinaryIncome := netting.OrdinaryCapGain.
		Add(ordinaryDividends).
		Add(in.Interest).
		Add(in.Other).
		Sub(netting.CapLossDeduction)
	preferentialIncome := netting.PrefCapGain.Add(qualified)
	agi := ordinaryIncome.Add(preferentialIncome)

	// Standard deduction comes out of the ordinary bucket first.
	taxableIncome := decimal.Max(decimal.Zero, agi.Sub(in.StandardDeduction))
	taxableOrdinary := decimal.Max(decimal.Zero, ordinaryIncome.Sub(in.StandardDeduction))
	taxablePreferential := decimal.Max(decimal.Zero, taxableIncome.Sub(taxableOrdinary))

	ordinaryTax := CalculateBracketTax(taxableOrdinary, fc.Brackets)
	stacking := CalculatePreferentialStacking(taxableOrdinary, taxablePreferential, fc.Thresholds)
	regularTax := ordinaryTax.Add(stacking.Tax)

	nii := decimal.Max(decimal.Zero, netting.OrdinaryCapGain).
		Add(decimal.Max(decimal.Zero, netting.PrefCapGain)).
		Add(in.Dividends).
		Add(in.Interest)
	niit := CalculateNIIT(nii, agi, in.NIITThreshold)

	ftc := CalculateForeignTaxCredit(NewForeignTaxCreditInput(in, taxableIncome, regularTax))

	grossIncome := ftc.WorldwideGross
	finalTax := regularTax.Sub(ftc.Allowed).Add(niit.Tax)
	effectiveRate := decimal.Zero
	if grossIncome.IsPositive() {
		effectiveRate = finalTax.Div(grossIncome).Mul(decimal.NewFromInt(100))
	}

	if ce.Debug {
		log.Debugf("scenario %s: agi=%s taxable=%s ordinary=%s preferential=%s",
			id, agi.StringFixed(2), taxableIncome.StringFixed(2),
			taxableOrdinary.StringFixed(2), taxablePreferential.StringFixed(2))
		log.Debugf("scenario %s: ordinaryTax=%s prefTax=%s niit=%s ftc=%s final=%s",
			id, ordinaryTax.StringFixed(2), stacking.Tax.StringFixed(2),
			niit.Tax.StringFixed(2), ftc.Allowed.StringFixed(2), finalTax.StringFixed(2))
	}

	return domain.TaxResult{
		ScenarioID:          id,
		Configuration:       fc.Name,
		GrossIncome:         grossIncome,
		QualifiedDividends:  qualified,
		OrdinaryDividends:   ordinaryDividends,
		Netting:             netting,
		OrdinaryIncome:      ordinaryIncome,
		PreferentialIncome:  preferentialIncome,
		AGI:                 agi,
		StandardDeduction:   in.StandardDeduction,
		TaxableIncome:       taxableIncome,
		TaxableOrdinary:     taxableOrdinary,
		TaxablePreferential: taxablePreferential,
		OrdinaryTax:         ordinaryTax,
		Preferential:        stacking,
		PreferentialTax:     stacking.Tax,
		RegularTax:          regularTax,
		NIIT:                niit,
		FTC:                 ftc,
		FinalTax:            finalTax,
		EffectiveRatePct:    effectiveRate,
		AfterTaxIncome:      grossIncome.Sub(finalTax),
	}
}
