package compare

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	Simulator         *transform.Simulator
	NewRunID          func() string
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine, sim *transform.Simulator) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	if sim == nil {
		sim = transform.NewDefaultSimulator()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		Simulator:         sim,
		NewRunID:          uuid.NewString,
	}
}

// Simulate derives every configured variant of base and compares them
// against the simulator's base identifier.
func (ce *CompareEngine) Simulate(base domain.ScenarioInputs, fc domain.FilingConfiguration) (*ComparisonSet, error) {
	if err := ce.Simulator.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation options: %w", err)
	}
	variants := ce.Simulator.DeriveAll(base)

	baseID := ce.Simulator.Options.BaseID
	found := false
	for _, v := range variants {
		if v.ID == baseID {
			found = true
			break
		}
	}
	if !found {
		variants = append([]domain.NamedScenario{{ID: baseID, Inputs: ce.Simulator.Derive(base, baseID)}}, variants...)
	}
	return ce.CompareScenarios(variants, baseID, fc)
}

// CompareTemplates applies each template to base and compares the results
// against base. Each variant is named after its template.
func (ce *CompareEngine) CompareTemplates(base domain.NamedScenario, templates []transform.Template, fc domain.FilingConfiguration) (*ComparisonSet, error) {
	scenarios := []domain.NamedScenario{base}
	for _, tmpl := range templates {
		modified, err := transform.ApplyTemplate(base.Inputs, tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", tmpl.Name, err)
		}
		scenarios = append(scenarios, domain.NamedScenario{ID: tmpl.Name, Inputs: modified})
	}
	return ce.CompareScenarios(scenarios, base.ID, fc)
}

// CompareScenarios compares explicit scenarios against the one named baseID
func (ce *CompareEngine) CompareScenarios(scenarios []domain.NamedScenario, baseID string, fc domain.FilingConfiguration) (*ComparisonSet, error) {
	var baseResult *ComparisonResult
	for _, s := range scenarios {
		if s.ID != baseID {
			continue
		}
		res, err := ce.CalcEngine.Calculate(s.ID, s.Inputs, fc)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
		}
		r := ce.MetricsCalculator.CalculateMetrics(res)
		r.IsBase = true
		baseResult = &r
		break
	}
	if baseResult == nil {
		return nil, fmt.Errorf("base scenario %s not found", baseID)
	}

	alternatives := []ComparisonResult{}
	for _, s := range scenarios {
		if s.ID == baseID {
			continue
		}
		res, err := ce.CalcEngine.Calculate(s.ID, s.Inputs, fc)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", s.ID, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(res)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, *baseResult))
	}

	compSet := &ComparisonSet{
		Configuration:      fc.Name,
		BaseScenarioID:     baseID,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
	}
	if ce.NewRunID != nil {
		compSet.RunID = ce.NewRunID()
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
