package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/output"
)

func calculateCmd(opts *cliOptions) *cobra.Command {
	var (
		format     string
		scenarioID string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "calculate [scenario-file]",
		Short: "Calculate tax for every scenario and point in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := opts.parser(cmd)
			if err != nil {
				return err
			}
			loaded, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range loaded.Warnings {
				opts.sugar().Warnf("%s", w)
			}

			engine := opts.engine()
			fc := loaded.Configuration

			var results []domain.TaxResult
			for _, s := range loaded.Scenarios {
				if scenarioID != "" && s.ID != scenarioID {
					continue
				}
				res, err := engine.Calculate(s.ID, s.Inputs, fc)
				if err != nil {
					return err
				}
				results = append(results, *res)
			}
			var points []domain.HeatmapPoint
			for _, p := range loaded.Points {
				if scenarioID == "" || p.ID == scenarioID {
					points = append(points, p)
				}
			}
			pointResults, err := engine.CalculatePoints(points, fc)
			if err != nil {
				return err
			}
			results = append(results, pointResults...)

			if scenarioID != "" && len(results) == 0 {
				return fmt.Errorf("scenario %s not found in %s", scenarioID, args[0])
			}

			report := output.NewPointReport(fc.Name, points, results)
			report.Warnings = loaded.Warnings

			name := opts.outputFormat(cmd, format)
			formatter := output.GetFormatterByName(name)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			data, err := formatter.Format(report)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d results to %s\n", len(results), outPath)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json, csv, html)")
	cmd.Flags().StringVar(&scenarioID, "scenario", "", "Only calculate the scenario or point with this id")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write output to this file instead of stdout")
	return cmd
}
