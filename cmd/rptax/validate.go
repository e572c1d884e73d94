package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/output"
)

func validateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file and report replaced values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := opts.parser(cmd)
			if err != nil {
				return err
			}
			loaded, err := parser.LoadFromFile(args[0])
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, w := range loaded.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintf(out, "Scenario file is valid: %d scenarios, %d points (configuration %s, base %s)\n",
				len(loaded.Scenarios), len(loaded.Points), loaded.Configuration.Name, loaded.Base)
			return nil
		},
	}
}

func configsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List available filing configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := opts.parser(cmd)
			if err != nil {
				return err
			}
			reg := parser.Registry

			out := cmd.OutOrStdout()
			for _, name := range reg.SortedNames() {
				fc, err := reg.Get(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == reg.DefaultName() {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s%s\n", name, marker)
				fmt.Fprintf(out, "  year %d, %s, standard deduction %s, NIIT threshold %s, %d brackets\n",
					fc.Year, fc.FilingStatus,
					output.FormatCurrency(fc.StandardDeduction),
					output.FormatCurrency(fc.NIITThreshold),
					len(fc.Brackets))
			}
			return nil
		},
	}
}
