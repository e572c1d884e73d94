package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/transform"
	"github.com/shopspring/decimal"
)

func baseInputs() domain.ScenarioInputs {
	d := decimal.NewFromInt
	return domain.ScenarioInputs{
		ShortTerm:          d(-290072),
		LongTerm:           d(1031155),
		Dividends:          d(22166),
		QualifiedDividends: domain.QualifiedAmount(d(2479)),
		Interest:           d(22849),
		Other:              d(101597),
		USShortTerm:        d(0),
		USLongTerm:         d(201184),
		USDividends:        d(2479),
		USInterest:         d(16925),
		USOther:            d(2982),
		ForeignTaxesPaid:   d(143430),
		FTCCarryover:       d(0),
		StandardDeduction:  d(31500),
		NIITThreshold:      d(250000),
		CapitalLossCap:     d(3000),
	}
}

func filing2025(t *testing.T) domain.FilingConfiguration {
	t.Helper()
	fc, err := config.BuiltinRegistry().Get(config.Config2025MFJ)
	if err != nil {
		t.Fatalf("missing builtin configuration: %v", err)
	}
	return fc
}

func TestCompareEngine_Simulate(t *testing.T) {
	ce := NewCompareEngine(nil, nil)
	ce.NewRunID = func() string { return "fixed" }

	compSet, err := ce.Simulate(baseInputs(), filing2025(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.RunID != "fixed" {
		t.Errorf("Expected run id fixed, got %s", compSet.RunID)
	}
	if compSet.BaseScenarioID != "B" || !compSet.BaseResult.IsBase {
		t.Fatalf("Expected base scenario B, got %s", compSet.BaseScenarioID)
	}
	if got := compSet.BaseResult.FinalTax.StringFixed(2); got != "59227.30" {
		t.Errorf("Expected base final tax 59227.30, got %s", got)
	}

	ids := []string{}
	for _, alt := range compSet.AlternativeResults {
		ids = append(ids, alt.ScenarioID)
		want := alt.FinalTax.Sub(compSet.BaseResult.FinalTax)
		if !alt.TaxDiffFromBase.Equal(want) {
			t.Errorf("%s: tax diff %s, want %s", alt.ScenarioID, alt.TaxDiffFromBase, want)
		}
	}
	if strings.Join(ids, ",") != "A,C,D,E,F" {
		t.Errorf("Unexpected alternative order: %v", ids)
	}
}

func TestCompareEngine_SimulateIsDeterministic(t *testing.T) {
	fc := filing2025(t)
	first, err := NewCompareEngine(nil, nil).Simulate(baseInputs(), fc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := NewCompareEngine(nil, nil).Simulate(baseInputs(), fc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := range first.AlternativeResults {
		a, b := first.AlternativeResults[i], second.AlternativeResults[i]
		if a.ScenarioID != b.ScenarioID || !a.FinalTax.Equal(b.FinalTax) {
			t.Errorf("Run mismatch at %d: %s=%s vs %s=%s", i, a.ScenarioID, a.FinalTax, b.ScenarioID, b.FinalTax)
		}
	}
	if first.RunID == second.RunID {
		t.Error("Expected distinct run ids")
	}
}

func TestCompareEngine_SimulateAddsMissingBase(t *testing.T) {
	opts := transform.DefaultSimulationOptions()
	opts.IDs = []string{"A"}
	ce := NewCompareEngine(calculation.NewCalculationEngine(), transform.NewSimulator(opts))

	compSet, err := ce.Simulate(baseInputs(), filing2025(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if compSet.BaseResult.ScenarioID != "B" {
		t.Errorf("Expected base B, got %s", compSet.BaseResult.ScenarioID)
	}
	if len(compSet.AlternativeResults) != 1 {
		t.Errorf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}
}

func TestCompareEngine_InvalidOptions(t *testing.T) {
	opts := transform.DefaultSimulationOptions()
	opts.IDs = nil
	ce := NewCompareEngine(nil, transform.NewSimulator(opts))

	if _, err := ce.Simulate(baseInputs(), filing2025(t)); err == nil {
		t.Error("Expected error for empty identifier list")
	}
}

func TestCompareEngine_CompareScenariosMissingBase(t *testing.T) {
	ce := NewCompareEngine(nil, nil)
	scenarios := []domain.NamedScenario{{ID: "X", Inputs: baseInputs()}}

	if _, err := ce.CompareScenarios(scenarios, "B", filing2025(t)); err == nil {
		t.Error("Expected error for missing base scenario")
	}
}

func TestCompareEngine_CompareTemplates(t *testing.T) {
	templates := transform.CreateBuiltInTemplates()
	noForeign, _ := templates.Get("no_foreign_taxes")

	ce := NewCompareEngine(nil, nil)
	compSet, err := ce.CompareTemplates(domain.NamedScenario{ID: "Base", Inputs: baseInputs()}, []transform.Template{noForeign}, filing2025(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}
	alt := compSet.AlternativeResults[0]
	if alt.ScenarioID != "no_foreign_taxes" {
		t.Errorf("Expected variant named after template, got %s", alt.ScenarioID)
	}
	if got := alt.FinalTax.StringFixed(2); got != "163181.22" {
		t.Errorf("Expected final tax 163181.22 without the credit, got %s", got)
	}
	if got := alt.TaxDiffFromBase.StringFixed(2); got != "103953.92" {
		t.Errorf("Expected tax increase 103953.92, got %s", got)
	}
}

func TestCompareEngine_CompareTemplatesInvalid(t *testing.T) {
	hold, _ := transform.CreateBuiltInTemplates().Get("hold_long_term")

	_, err := NewCompareEngine(nil, nil).CompareTemplates(domain.NamedScenario{ID: "Base", Inputs: baseInputs()}, []transform.Template{hold}, filing2025(t))
	if err == nil || !strings.Contains(err.Error(), "hold_long_term") {
		t.Errorf("Expected template error for a short-term loss, got %v", err)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := sampleComparisonSet()
	recs := GenerateRecommendations(compSet)

	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.HasPrefix(recs[0], "Lowest Tax: A") {
		t.Errorf("Unexpected first recommendation: %s", recs[0])
	}
	if !strings.Contains(recs[2], "127169") {
		t.Errorf("Expected after-tax gain in recommendation: %s", recs[2])
	}

	compSet.AlternativeResults = nil
	if recs := GenerateRecommendations(compSet); len(recs) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", recs)
	}
}
