package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/breakeven"
)

func breakevenCmd(opts *cliOptions) *cobra.Command {
	var (
		solveFor  string
		goal      string
		target    float64
		income    float64
		stcgPct   float64
		incomes   []float64
		maxIter   int
		tolerance float64
		format    string
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the income or short-term share at which a tax goal is reached",
		Long: "Bisects the short-term share (at a fixed income) or the income (at a fixed short-term share) " +
			"until the effective rate, final tax or after-tax income reaches the target. With --incomes the " +
			"short-term share is solved at each income.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := opts.filingConfiguration(cmd)
			if err != nil {
				return err
			}

			inc := decimal.NewFromFloat(income)
			pct := decimal.NewFromFloat(stcgPct)
			c := breakeven.DefaultConstraints(decimal.NewFromFloat(target))
			c.Income = &inc
			c.ShortTermPct = &pct

			req := breakeven.SolveRequest{
				Configuration: fc,
				Target:        breakeven.SolveTarget(solveFor),
				Goal:          breakeven.SolveGoal(goal),
				Constraints:   c,
				MaxIterations: maxIter,
				Tolerance:     decimal.NewFromFloat(tolerance),
			}

			solver := breakeven.NewDefaultSolver(opts.engine())
			out := cmd.OutOrStdout()
			tf := &breakeven.TableFormatter{}
			jf := &breakeven.JSONFormatter{Pretty: true}

			if len(incomes) > 0 {
				sweep, err := solver.SolveAcrossIncomes(cmd.Context(), toDecimals(incomes), req)
				if err != nil {
					return err
				}
				if format == "json" {
					s, err := jf.Format(sweep)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, tf.FormatSweep(sweep, req.Goal, req.Constraints.TargetValue))
				return nil
			}

			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			opts.sugar().Debugf("breakeven %s/%s converged=%t after %d evaluations",
				solveFor, goal, result.Success, result.Iterations)

			switch format {
			case "json":
				s, err := jf.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "table", "":
				fmt.Fprint(out, tf.Format(result))
			default:
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&solveFor, "solve", string(breakeven.SolveShortTermPct), "Coordinate to solve for (stcg_pct, income)")
	cmd.Flags().StringVar(&goal, "goal", string(breakeven.GoalEffectiveRate), "Goal quantity (effective_rate, final_tax, after_tax)")
	cmd.Flags().Float64Var(&target, "target", 25, "Target value of the goal (percent for effective_rate, dollars otherwise)")
	cmd.Flags().Float64Var(&income, "income", 800000, "Fixed income when solving for stcg_pct")
	cmd.Flags().Float64Var(&stcgPct, "stcg-pct", 100, "Fixed short-term share when solving for income")
	cmd.Flags().Float64SliceVar(&incomes, "incomes", nil, "Solve the short-term share at each of these incomes")
	cmd.Flags().IntVar(&maxIter, "max-iterations", 0, "Maximum evaluations (default from solver options)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Accepted distance from the target (default 0.01)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
