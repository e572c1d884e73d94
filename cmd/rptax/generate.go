package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/compare"
	"github.com/rgehrsitz/rptax/internal/output"
)

const (
	defaultGenerateCSV   = "tax_scenarios.csv"
	defaultComparisonCSV = "tax_scenarios_comparison.csv"
)

func generateCmd(opts *cliOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the default twenty-scenario batch as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := opts.filingConfiguration(cmd)
			if err != nil {
				return err
			}

			points := calculation.DefaultScenarioPoints()
			results, err := opts.engine().CalculatePoints(points, fc)
			if err != nil {
				return err
			}

			data, err := output.GenerateCSVFormatter{}.Format(output.NewPointReport(fc.Name, points, results))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d scenarios to %s\n", len(results), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", defaultGenerateCSV, "Output CSV path")
	return cmd
}

func compareCSVCmd(opts *cliOptions) *cobra.Command {
	var oursPath, otherPath, outPath string

	cmd := &cobra.Command{
		Use:   "compare-csv",
		Short: "Merge another tool's results by scenario_id and compute differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := compare.MergeCSVFiles(oursPath, otherPath, outPath)
			if err != nil {
				return err
			}
			opts.sugar().Debugf("merged %d rows from %s onto %s", n, otherPath, oursPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote comparison CSV to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&oursPath, "ours", defaultGenerateCSV, "Our CSV path")
	cmd.Flags().StringVar(&otherPath, "other", "", "Other tool's CSV path")
	cmd.Flags().StringVarP(&outPath, "out", "o", defaultComparisonCSV, "Comparison CSV path")
	_ = cmd.MarkFlagRequired("other")
	return cmd
}
