package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the heatmap point at which a result quantity reaches a target.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve bisects the varied coordinate between its bounds. The goal quantity
// is assumed monotone in that coordinate; its direction is read from the
// bounds. A target outside the reachable range yields the closer bound with
// Success false.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}
	switch req.Goal {
	case GoalEffectiveRate, GoalFinalTax, GoalAfterTax:
	default:
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("unsupported goal: %s", req.Goal)}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = DefaultTolerance
	}

	lo, hi, minStep := s.bounds(req)
	target := req.Constraints.TargetValue

	loRes, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	hiRes, err := s.evaluate(req, hi)
	if err != nil {
		return nil, err
	}
	iterations := 2

	for _, r := range []*SolveResult{loRes, hiRes} {
		if r.Gap.Abs().LessThanOrEqual(req.Tolerance) {
			r.Success = true
			r.Iterations = iterations
			r.ConvergenceInfo = "Target met at search bound"
			return r, nil
		}
	}

	increasing := hiRes.Achieved.GreaterThanOrEqual(loRes.Achieved)
	if loRes.Gap.Sign() == hiRes.Gap.Sign() {
		closer := loRes
		if hiRes.Gap.Abs().LessThan(loRes.Gap.Abs()) {
			closer = hiRes
		}
		closer.Iterations = iterations
		closer.ConvergenceInfo = fmt.Sprintf("Target %s outside reachable range [%s, %s]",
			target.StringFixed(2), loRes.Achieved.StringFixed(2), hiRes.Achieved.StringFixed(2))
		return closer, nil
	}

	best := loRes
	if hiRes.Gap.Abs().LessThan(loRes.Gap.Abs()) {
		best = hiRes
	}
	for iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		res, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		iterations++

		if res.Gap.Abs().LessThan(best.Gap.Abs()) {
			best = res
		}
		if res.Gap.Abs().LessThanOrEqual(req.Tolerance) {
			res.Success = true
			res.Iterations = iterations
			res.ConvergenceInfo = fmt.Sprintf("Converged within %s of target", req.Tolerance.String())
			return res, nil
		}

		if res.Gap.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}
		if hi.Sub(lo).LessThan(minStep) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "Binary search converged"
			return best, nil
		}
	}

	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

func (s *Solver) bounds(req SolveRequest) (lo, hi, step decimal.Decimal) {
	c := req.Constraints
	if req.Target == SolveIncome {
		lo, hi = decimal.NewFromInt(1), decimal.NewFromInt(10000000)
		if c.MinIncome != nil {
			lo = decimal.Max(lo, *c.MinIncome)
		}
		if c.MaxIncome != nil {
			hi = *c.MaxIncome
		}
		return lo, hi, s.Options.MinIncomeStep
	}
	lo, hi = decimal.Zero, decimal.NewFromInt(100)
	if c.MinShortTermPct != nil {
		lo = decimal.Max(lo, *c.MinShortTermPct)
	}
	if c.MaxShortTermPct != nil {
		hi = decimal.Min(hi, *c.MaxShortTermPct)
	}
	return lo, hi, s.Options.MinPctStep
}

// evaluate computes the point at coordinate x and its distance from target.
func (s *Solver) evaluate(req SolveRequest, x decimal.Decimal) (*SolveResult, error) {
	p := domain.HeatmapPoint{ID: "breakeven"}
	if req.Target == SolveIncome {
		p.Income = x
		p.ShortTermPct = *req.Constraints.ShortTermPct
	} else {
		p.Income = *req.Constraints.Income
		p.ShortTermPct = x
	}
	p = p.Bounded()

	res, err := s.CalcEngine.CalculateHeatmapPoint(p, req.Configuration)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate point " + p.Key(),
			Cause:     err,
		}
	}

	achieved := goalValue(req.Goal, res)
	return &SolveResult{
		Request:  req,
		Point:    p,
		Result:   res,
		Achieved: achieved,
		Gap:      achieved.Sub(req.Constraints.TargetValue),
	}, nil
}

func goalValue(goal SolveGoal, res *domain.TaxResult) decimal.Decimal {
	switch goal {
	case GoalFinalTax:
		return res.FinalTax
	case GoalAfterTax:
		return res.AfterTaxIncome
	default:
		return res.EffectiveRatePct
	}
}
