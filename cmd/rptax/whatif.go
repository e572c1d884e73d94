package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rptax/internal/compare"
	"github.com/rgehrsitz/rptax/internal/domain"
	"github.com/rgehrsitz/rptax/internal/transform"
)

func whatIfCmd(opts *cliOptions) *cobra.Command {
	var (
		format        string
		baseID        string
		with          string
		specs         []string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "what-if [scenario-file]",
		Short: "Compare a scenario against planning templates and custom transforms",
		Example: `  rptax what-if scenarios.yaml --with harvest_50k,hold_long_term
  rptax what-if scenarios.yaml --transform harvest_losses:amount=25000 --transform set_qualified:amount=5000
  rptax what-if --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("scenario file required (use --list-templates to see available templates)")
			}
			if with == "" && len(specs) == 0 {
				return fmt.Errorf("--with or --transform is required")
			}

			var variants []transform.Template
			for _, name := range transform.ParseTemplateList(with) {
				tmpl, ok := templates.Get(name)
				if !ok {
					return fmt.Errorf("unknown template %q (available: %v)", name, templates.List())
				}
				variants = append(variants, tmpl)
			}
			if len(specs) > 0 {
				registry := transform.NewTransformRegistry()
				custom := transform.Template{Name: "custom", Description: "Transforms given on the command line"}
				for _, spec := range specs {
					t, err := registry.ParseTransformSpec(spec)
					if err != nil {
						return err
					}
					custom.Transforms = append(custom.Transforms, t)
				}
				variants = append(variants, custom)
			}

			parser, err := opts.parser(cmd)
			if err != nil {
				return err
			}
			loaded, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			want := loaded.Base
			if baseID != "" {
				want = baseID
			}
			var base *domain.NamedScenario
			for i := range loaded.Scenarios {
				if loaded.Scenarios[i].ID == want {
					base = &loaded.Scenarios[i]
					break
				}
			}
			if base == nil {
				return fmt.Errorf("base scenario %q not found in %s", want, args[0])
			}

			ce := compare.NewCompareEngine(opts.engine(), nil)
			compSet, err := ce.CompareTemplates(*base, variants, loaded.Configuration)
			if err != nil {
				return err
			}
			compSet.SourcePath = args[0]
			opts.sugar().Infof("what-if %s compared %d variants against %s", compSet.RunID, len(variants), base.ID)

			var out string
			switch name := opts.outputFormat(cmd, format); name {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", name)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().StringVar(&baseID, "base", "", "Base scenario id (default: the file's base)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVar(&specs, "transform", nil, "Custom transform as name:key=value,... (repeatable)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available templates")
	return cmd
}
