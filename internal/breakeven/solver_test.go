package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/shopspring/decimal"
)

func filing2026(t *testing.T) domain.FilingConfiguration {
	t.Helper()
	fc, err := config.BuiltinRegistry().Get(config.Config2026MFJ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fc
}

func pctRequest(t *testing.T, income int64, goal SolveGoal, target decimal.Decimal) SolveRequest {
	inc := decimal.NewFromInt(income)
	c := DefaultConstraints(target)
	c.Income = &inc
	return SolveRequest{
		Configuration: filing2026(t),
		Target:        SolveShortTermPct,
		Goal:          goal,
		Constraints:   c,
	}
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver_NilEngine(t *testing.T) {
	solver := NewDefaultSolver(nil)

	if solver.CalcEngine == nil {
		t.Fatal("Expected a default engine")
	}
	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default options to be applied")
	}
}

func TestConstraints_Validate(t *testing.T) {
	income := decimal.NewFromInt(800000)
	lo := decimal.NewFromInt(80)
	hi := decimal.NewFromInt(20)

	tests := []struct {
		name   string
		target SolveTarget
		c      Constraints
		ok     bool
	}{
		{"pct without income", SolveShortTermPct, Constraints{}, false},
		{"pct with income", SolveShortTermPct, Constraints{Income: &income}, true},
		{"pct bounds inverted", SolveShortTermPct, Constraints{Income: &income, MinShortTermPct: &lo, MaxShortTermPct: &hi}, false},
		{"income without pct", SolveIncome, Constraints{}, false},
		{"income with pct", SolveIncome, Constraints{ShortTermPct: &lo}, true},
		{"income bounds inverted", SolveIncome, Constraints{ShortTermPct: &lo, MinIncome: &income, MaxIncome: &hi}, false},
		{"unknown target", SolveTarget("year"), Constraints{Income: &income}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate(tt.target)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				var beErr *BreakEvenError
				if !errors.As(err, &beErr) {
					t.Errorf("expected BreakEvenError, got %v", err)
				}
			}
		})
	}
}

func TestSolver_Solve_UnsupportedGoal(t *testing.T) {
	solver := NewDefaultSolver(nil)
	req := pctRequest(t, 800000, SolveGoal("lifetime_income"), decimal.NewFromInt(1))

	_, err := solver.Solve(context.Background(), req)

	if err == nil || !strings.Contains(err.Error(), "unsupported goal") {
		t.Errorf("expected unsupported goal error, got %v", err)
	}
}

func TestSolver_Solve_TargetAtBound(t *testing.T) {
	solver := NewDefaultSolver(nil)
	req := pctRequest(t, 800000, GoalFinalTax, decimal.RequireFromString("227168.50"))

	result, err := solver.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Errorf("expected success, got %s", result.ConvergenceInfo)
	}
	if result.Point.ShortTermPct.String() != "100" {
		t.Errorf("expected the 100%% bound, got %s", result.Point.ShortTermPct)
	}
	if result.Iterations != 2 {
		t.Errorf("expected 2 evaluations, got %d", result.Iterations)
	}
}

func TestSolver_Solve_EffectiveRateByShortTermShare(t *testing.T) {
	solver := NewDefaultSolver(nil)
	target := decimal.NewFromInt(25)
	req := pctRequest(t, 800000, GoalEffectiveRate, target)

	result, err := solver.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got %s", result.ConvergenceInfo)
	}
	if result.Gap.Abs().GreaterThan(DefaultTolerance) {
		t.Errorf("expected gap within tolerance, got %s", result.Gap)
	}
	if result.Point.ShortTermPct.LessThanOrEqual(decimal.Zero) || result.Point.ShortTermPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		t.Errorf("expected an interior short-term share, got %s", result.Point.ShortTermPct)
	}
	if !result.Achieved.Equal(result.Result.EffectiveRatePct) {
		t.Error("expected achieved value to be the effective rate")
	}
}

func TestSolver_Solve_IncomeForFinalTax(t *testing.T) {
	solver := NewDefaultSolver(nil)
	pct := decimal.NewFromInt(100)
	c := DefaultConstraints(decimal.NewFromInt(100000))
	c.ShortTermPct = &pct
	req := SolveRequest{
		Configuration: filing2026(t),
		Target:        SolveIncome,
		Goal:          GoalFinalTax,
		Constraints:   c,
	}

	result, err := solver.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got %s", result.ConvergenceInfo)
	}
	if result.Result.FinalTax.Sub(decimal.NewFromInt(100000)).Abs().GreaterThan(DefaultTolerance) {
		t.Errorf("expected final tax near 100000, got %s", result.Result.FinalTax)
	}
}

func TestSolver_Solve_Unreachable(t *testing.T) {
	solver := NewDefaultSolver(nil)
	req := pctRequest(t, 800000, GoalEffectiveRate, decimal.NewFromInt(50))

	result, err := solver.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success {
		t.Error("expected failure for an unreachable target")
	}
	if result.Point.ShortTermPct.String() != "100" {
		t.Errorf("expected the closer bound, got %s", result.Point.ShortTermPct)
	}
	if !strings.Contains(result.ConvergenceInfo, "outside reachable range") {
		t.Errorf("unexpected convergence info %q", result.ConvergenceInfo)
	}
}

func TestSolver_Solve_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, pctRequest(t, 800000, GoalEffectiveRate, decimal.NewFromInt(25)))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSolver_SolveAcrossIncomes(t *testing.T) {
	solver := NewDefaultSolver(nil)
	incomes := []decimal.Decimal{
		decimal.NewFromInt(600000),
		decimal.NewFromInt(800000),
		decimal.NewFromInt(1000000),
	}
	req := pctRequest(t, 1, GoalEffectiveRate, decimal.NewFromInt(25))

	sweep, err := solver.SolveAcrossIncomes(context.Background(), incomes, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sweep.Results) != 2 {
		t.Fatalf("expected 2 solved incomes, got %d", len(sweep.Results))
	}
	if len(sweep.Unreachable) != 1 || sweep.Unreachable[0].String() != "600000" {
		t.Errorf("expected 600000 to be unreachable, got %v", sweep.Unreachable)
	}
	if !sweep.Results[1].Point.ShortTermPct.LessThan(sweep.Results[0].Point.ShortTermPct) {
		t.Error("expected a lower short-term share at the higher income")
	}

	text := (&TableFormatter{}).FormatSweep(sweep, GoalEffectiveRate, decimal.NewFromInt(25))
	if !strings.Contains(text, "UNREACHABLE") || !strings.Contains(text, "$600.0K") {
		t.Errorf("unexpected sweep output:\n%s", text)
	}
}

func TestSolver_SolveAcrossIncomes_Empty(t *testing.T) {
	solver := NewDefaultSolver(nil)

	_, err := solver.SolveAcrossIncomes(context.Background(), nil, SolveRequest{})

	if err == nil {
		t.Error("expected error for empty income list")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	solver := NewDefaultSolver(nil)
	result, err := solver.Solve(context.Background(), pctRequest(t, 800000, GoalFinalTax, decimal.RequireFromString("227168.50")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := (&TableFormatter{}).Format(result)

	for _, want := range []string{"BREAK-EVEN RESULTS", "$800,000.00", "100.00%", "✓ Converged", "2026-mfj"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}

	js, err := (&JSONFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(js, `"success":true`) {
		t.Errorf("unexpected JSON: %s", js)
	}
}
