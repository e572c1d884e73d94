package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/output"
)

func heatmapCmd(opts *cliOptions) *cobra.Command {
	var (
		income   float64
		stcgPct  float64
		metric   string
		incomes  []float64
		stcgPcts []float64
	)

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render effective rate or tax due over income and short-term share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := opts.filingConfiguration(cmd)
			if err != nil {
				return err
			}

			m := output.HeatmapMetric(metric)
			if m != output.HeatmapEffectiveRate && m != output.HeatmapTaxDue {
				return fmt.Errorf("unsupported metric %q (available: rate, tax)", metric)
			}

			rows := calculation.DefaultHeatmapIncomes
			if len(incomes) > 0 {
				rows = toDecimals(incomes)
			}
			cols := calculation.DefaultShortTermPoints
			if len(stcgPcts) > 0 {
				cols = toDecimals(stcgPcts)
			}

			active := domain.HeatmapPoint{
				ID:           "active",
				Income:       decimal.NewFromFloat(income),
				ShortTermPct: decimal.NewFromFloat(stcgPct),
			}.Bounded()

			engine := opts.engine()
			hm, err := engine.CalculateHeatmap(rows, cols, &active, fc)
			if err != nil {
				return err
			}
			res, err := engine.CalculateHeatmapPoint(active, fc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, output.FormatHeatmap(hm, m))
			fmt.Fprintf(out, "\nActive point: %s at %s short-term\n",
				output.FormatCurrency(active.Income), output.FormatPercentage(active.ShortTermPct))
			fmt.Fprintf(out, "  Final Tax:       %s\n", output.FormatCurrency(res.FinalTax))
			fmt.Fprintf(out, "  Effective Rate:  %s\n", output.FormatPercentage(res.EffectiveRatePct))
			fmt.Fprintf(out, "  After-Tax:       %s\n", output.FormatCurrency(res.AfterTaxIncome))
			return nil
		},
	}

	cmd.Flags().Float64Var(&income, "income", 800000, "Active point total income")
	cmd.Flags().Float64Var(&stcgPct, "stcg-pct", 100, "Active point short-term share in percent")
	cmd.Flags().StringVar(&metric, "metric", "rate", "Cell metric (rate, tax)")
	cmd.Flags().Float64SliceVar(&incomes, "incomes", nil, "Grid incomes (default 600k..1.4M)")
	cmd.Flags().Float64SliceVar(&stcgPcts, "stcg-pcts", nil, "Grid short-term percentages (default 0..100 by 20)")
	return cmd
}

func toDecimals(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}
