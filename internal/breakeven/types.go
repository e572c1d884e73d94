package breakeven

import (
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget selects which heatmap coordinate the solver varies.
type SolveTarget string

const (
	SolveShortTermPct SolveTarget = "stcg_pct" // vary short-term share at a fixed income
	SolveIncome       SolveTarget = "income"   // vary income at a fixed short-term share
)

// SolveGoal selects the result quantity that must reach the target value.
type SolveGoal string

const (
	GoalEffectiveRate SolveGoal = "effective_rate" // effective rate in percent
	GoalFinalTax      SolveGoal = "final_tax"
	GoalAfterTax      SolveGoal = "after_tax"
)

// Constraints bound the search and fix the coordinate that is not solved for.
type Constraints struct {
	// Fixed coordinates
	Income       *decimal.Decimal `json:"income,omitempty"`
	ShortTermPct *decimal.Decimal `json:"stcg_pct,omitempty"`

	// Search bounds
	MinIncome       *decimal.Decimal `json:"min_income,omitempty"`
	MaxIncome       *decimal.Decimal `json:"max_income,omitempty"`
	MinShortTermPct *decimal.Decimal `json:"min_stcg_pct,omitempty"`
	MaxShortTermPct *decimal.Decimal `json:"max_stcg_pct,omitempty"`

	TargetValue decimal.Decimal `json:"target_value"`
}

// DefaultConstraints searches the full short-term range and incomes up to
// ten million.
func DefaultConstraints(target decimal.Decimal) Constraints {
	minIncome := decimal.NewFromInt(1)
	maxIncome := decimal.NewFromInt(10000000)
	minPct := decimal.Zero
	maxPct := decimal.NewFromInt(100)

	return Constraints{
		MinIncome:       &minIncome,
		MaxIncome:       &maxIncome,
		MinShortTermPct: &minPct,
		MaxShortTermPct: &maxPct,
		TargetValue:     target,
	}
}

// SolveRequest defines the parameters for one solve
type SolveRequest struct {
	Configuration domain.FilingConfiguration
	Target        SolveTarget
	Goal          SolveGoal
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal // zero selects the goal's default
}

// SolveResult contains the outcome of one solve
type SolveResult struct {
	Request         SolveRequest `json:"-"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergence_info"`

	Point    domain.HeatmapPoint `json:"point"`
	Result   *domain.TaxResult   `json:"result"`
	Achieved decimal.Decimal     `json:"achieved"`
	Gap      decimal.Decimal     `json:"gap"` // achieved - target
}

// SweepResult holds one solve per fixed income.
type SweepResult struct {
	Results     []SolveResult
	Unreachable []decimal.Decimal
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int
	// Interval widths below which bisection stops.
	MinPctStep    decimal.Decimal
	MinIncomeStep decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 100,
		MinPctStep:    decimal.NewFromFloat(0.0001),
		MinIncomeStep: decimal.NewFromFloat(0.01),
	}
}

// DefaultTolerance is the accepted distance from the target: a hundredth of
// a percentage point for rates and one cent for amounts.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Validate checks if constraints are internally consistent for target
func (c *Constraints) Validate(target SolveTarget) error {
	switch target {
	case SolveShortTermPct:
		if c.Income == nil || !c.Income.IsPositive() {
			return &BreakEvenError{Operation: "validate_constraints", Message: "a positive fixed income is required"}
		}
		if c.MinShortTermPct != nil && c.MaxShortTermPct != nil && c.MinShortTermPct.GreaterThan(*c.MaxShortTermPct) {
			return &BreakEvenError{Operation: "validate_constraints", Message: "min_stcg_pct cannot be greater than max_stcg_pct"}
		}
	case SolveIncome:
		if c.ShortTermPct == nil {
			return &BreakEvenError{Operation: "validate_constraints", Message: "a fixed short-term percentage is required"}
		}
		if c.MinIncome != nil && c.MaxIncome != nil && c.MinIncome.GreaterThan(*c.MaxIncome) {
			return &BreakEvenError{Operation: "validate_constraints", Message: "min_income cannot be greater than max_income"}
		}
	default:
		return &BreakEvenError{Operation: "validate_constraints", Message: "unsupported solve target: " + string(target)}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
