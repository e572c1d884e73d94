package transform

import (
	"fmt"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func categoryFields(s *domain.ScenarioInputs, c domain.Category) (total, us *decimal.Decimal) {
	switch c {
	case domain.CategoryShortTerm:
		return &s.ShortTerm, &s.USShortTerm
	case domain.CategoryLongTerm:
		return &s.LongTerm, &s.USLongTerm
	case domain.CategoryDividends:
		return &s.Dividends, &s.USDividends
	case domain.CategoryInterest:
		return &s.Interest, &s.USInterest
	case domain.CategoryOther:
		return &s.Other, &s.USOther
	}
	return nil, nil
}

func validCategory(c domain.Category) bool {
	for _, known := range domain.Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ScaleCategory multiplies a category total and its US-source amount.
type ScaleCategory struct {
	Category domain.Category
	Factor   decimal.Decimal
}

func (sc *ScaleCategory) Name() string { return "scale" }

func (sc *ScaleCategory) Description() string {
	return fmt.Sprintf("Scale %s by %s", sc.Category, sc.Factor)
}

func (sc *ScaleCategory) Validate(base domain.ScenarioInputs) error {
	if !validCategory(sc.Category) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown category %q", sc.Category), nil)
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleCategory) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	total, us := categoryFields(&out, sc.Category)
	*total = total.Mul(sc.Factor)
	*us = us.Mul(sc.Factor)
	if q, ok := out.QualifiedDividends.Amount(); ok && sc.Category == domain.CategoryDividends {
		out.QualifiedDividends = domain.QualifiedAmount(q.Mul(sc.Factor))
	}
	return out, nil
}

// HoldLongTerm moves short-term gain into long-term, as if the positions
// were held past a year. The US-source share moves with it. A zero Amount
// moves the whole short-term gain.
type HoldLongTerm struct {
	Amount decimal.Decimal
}

func (h *HoldLongTerm) Name() string { return "hold_long_term" }

func (h *HoldLongTerm) Description() string {
	if h.Amount.IsZero() {
		return "Hold every short-term position past one year"
	}
	return fmt.Sprintf("Hold $%s of short-term gain past one year", h.Amount.StringFixed(0))
}

func (h *HoldLongTerm) Validate(base domain.ScenarioInputs) error {
	if h.Amount.IsNegative() {
		return NewTransformError(h.Name(), "validate", "amount must be non-negative", nil)
	}
	if !base.ShortTerm.IsPositive() {
		return NewTransformError(h.Name(), "validate", "scenario has no short-term gain to convert", nil)
	}
	if h.Amount.GreaterThan(base.ShortTerm) {
		return NewTransformError(h.Name(), "validate",
			fmt.Sprintf("amount %s exceeds short-term gain %s", h.Amount, base.ShortTerm), nil)
	}
	return nil
}

func (h *HoldLongTerm) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	moved := h.Amount
	if moved.IsZero() {
		moved = base.ShortTerm
	}
	usMoved := base.USShortTerm.Mul(moved).Div(base.ShortTerm)

	out.ShortTerm = base.ShortTerm.Sub(moved)
	out.USShortTerm = base.USShortTerm.Sub(usMoved)
	out.LongTerm = base.LongTerm.Add(moved)
	out.USLongTerm = decimal.Max(decimal.Zero, base.USLongTerm).Add(usMoved)
	return out, nil
}

// HarvestLosses realizes an additional short-term loss.
type HarvestLosses struct {
	Amount decimal.Decimal
}

func (hl *HarvestLosses) Name() string { return "harvest_losses" }

func (hl *HarvestLosses) Description() string {
	return fmt.Sprintf("Harvest $%s of short-term losses", hl.Amount.StringFixed(0))
}

func (hl *HarvestLosses) Validate(base domain.ScenarioInputs) error {
	if !hl.Amount.IsPositive() {
		return NewTransformError(hl.Name(), "validate", "amount must be positive", nil)
	}
	return nil
}

func (hl *HarvestLosses) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	out.ShortTerm = base.ShortTerm.Sub(hl.Amount)
	if out.ShortTerm.IsPositive() && base.ShortTerm.IsPositive() {
		out.USShortTerm = base.USShortTerm.Mul(out.ShortTerm).Div(base.ShortTerm)
	}
	return out, nil
}

// SetUSShare sets the US-source amount of a category to a percentage of its
// total.
type SetUSShare struct {
	Category domain.Category
	Pct      decimal.Decimal
}

func (su *SetUSShare) Name() string { return "set_us_share" }

func (su *SetUSShare) Description() string {
	return fmt.Sprintf("Treat %s%% of %s as US-source", su.Pct, su.Category)
}

func (su *SetUSShare) Validate(base domain.ScenarioInputs) error {
	if !validCategory(su.Category) {
		return NewTransformError(su.Name(), "validate", fmt.Sprintf("unknown category %q", su.Category), nil)
	}
	if su.Pct.IsNegative() || su.Pct.GreaterThan(hundred) {
		return NewTransformError(su.Name(), "validate", fmt.Sprintf("percentage must be in [0,100], got %s", su.Pct), nil)
	}
	return nil
}

func (su *SetUSShare) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	total, us := categoryFields(&out, su.Category)
	*us = total.Mul(su.Pct).Div(hundred)
	return out, nil
}

// SetForeignTaxes replaces foreign taxes paid and, when given, the carryover.
type SetForeignTaxes struct {
	Paid      decimal.Decimal
	Carryover *decimal.Decimal
}

func (sf *SetForeignTaxes) Name() string { return "set_foreign_taxes" }

func (sf *SetForeignTaxes) Description() string {
	if sf.Carryover == nil {
		return fmt.Sprintf("Set foreign taxes paid to $%s", sf.Paid.StringFixed(0))
	}
	return fmt.Sprintf("Set foreign taxes paid to $%s with $%s carryover", sf.Paid.StringFixed(0), sf.Carryover.StringFixed(0))
}

func (sf *SetForeignTaxes) Validate(base domain.ScenarioInputs) error {
	if sf.Paid.IsNegative() || (sf.Carryover != nil && sf.Carryover.IsNegative()) {
		return NewTransformError(sf.Name(), "validate", "foreign tax amounts must be non-negative", nil)
	}
	return nil
}

func (sf *SetForeignTaxes) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	out.ForeignTaxesPaid = sf.Paid
	if sf.Carryover != nil {
		out.FTCCarryover = *sf.Carryover
	}
	return out, nil
}

// SetQualifiedDividends sets qualified dividends; nil resets them to unset.
type SetQualifiedDividends struct {
	Amount *decimal.Decimal
}

func (sq *SetQualifiedDividends) Name() string { return "set_qualified" }

func (sq *SetQualifiedDividends) Description() string {
	if sq.Amount == nil {
		return "Treat US-source dividends as qualified"
	}
	return fmt.Sprintf("Set qualified dividends to $%s", sq.Amount.StringFixed(0))
}

func (sq *SetQualifiedDividends) Validate(base domain.ScenarioInputs) error {
	if sq.Amount != nil && sq.Amount.IsNegative() {
		return NewTransformError(sq.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (sq *SetQualifiedDividends) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base
	if sq.Amount == nil {
		out.QualifiedDividends = domain.UnsetQualified()
	} else {
		out.QualifiedDividends = domain.QualifiedAmount(*sq.Amount)
	}
	return out, nil
}
