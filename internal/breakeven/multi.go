package breakeven

import (
	"context"

	"github.com/shopspring/decimal"
)

// SolveAcrossIncomes solves for the short-term percentage at each income,
// tracing the line along which the goal stays at the target value. Incomes
// where the target cannot be reached are listed in Unreachable.
func (s *Solver) SolveAcrossIncomes(ctx context.Context, incomes []decimal.Decimal, req SolveRequest) (*SweepResult, error) {
	if len(incomes) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_across_incomes",
			Message:   "at least one income is required",
		}
	}

	req.Target = SolveShortTermPct
	sweep := &SweepResult{}
	for _, income := range incomes {
		r := req
		inc := income
		r.Constraints.Income = &inc

		result, err := s.Solve(ctx, r)
		if err != nil {
			return nil, err
		}
		if result.Success {
			sweep.Results = append(sweep.Results, *result)
		} else {
			sweep.Unreachable = append(sweep.Unreachable, income)
		}
	}
	return sweep, nil
}
