package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/rptax/internal/calculation"
	"github.com/rgehrsitz/rptax/internal/config"
	"github.com/rgehrsitz/rptax/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliOptions carries the persistent flags and the state built from them
// before any subcommand runs.
type cliOptions struct {
	settingsPath   string
	logLevel       string
	configuration  string
	regulatoryFile string
	debug          bool

	settings *config.Settings
	logger   *zap.Logger
}

func (o *cliOptions) setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings(o.settingsPath)
	if err != nil {
		return err
	}
	o.settings = s

	level := o.logLevel
	if o.debug && level == "" {
		level = "debug"
	}
	logger, err := initializeLogger(s.Logging, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

func (o *cliOptions) sugar() *zap.SugaredLogger {
	if o.logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.logger.Sugar()
}

// parser builds an input parser honoring --regulatory-config and --config.
func (o *cliOptions) parser(cmd *cobra.Command) (*config.InputParser, error) {
	p := config.NewInputParser()

	regFile := o.regulatoryFile
	if regFile == "" && o.settings != nil {
		regFile = o.settings.RegulatoryFile
	}
	if regFile != "" {
		o.sugar().Debugf("loading regulatory config from %s", regFile)
		if _, err := p.LoadRegulatory(regFile); err != nil {
			return nil, err
		}
	}

	if o.settings != nil {
		o.settings.Apply(p)
	}
	if cmd.Flags().Changed("config") {
		p.ForceConfiguration = o.configuration
	}
	return p, nil
}

// filingConfiguration resolves the configuration for commands that take no
// scenario file.
func (o *cliOptions) filingConfiguration(cmd *cobra.Command) (domain.FilingConfiguration, error) {
	p, err := o.parser(cmd)
	if err != nil {
		return domain.FilingConfiguration{}, err
	}
	name := p.DefaultConfiguration
	if p.ForceConfiguration != "" {
		name = p.ForceConfiguration
	}
	return p.Registry.Get(name)
}

func (o *cliOptions) engine() *calculation.CalculationEngine {
	e := calculation.NewCalculationEngine()
	e.SetLogger(o.sugar())
	e.Debug = o.debug
	return e
}

func (o *cliOptions) outputFormat(cmd *cobra.Command, flagValue string) string {
	if !cmd.Flags().Changed("format") && o.settings != nil && o.settings.OutputFormat != "" {
		return o.settings.OutputFormat
	}
	return strings.ToLower(flagValue)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rptax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "rptax",
		Short: "Capital gains tax scenario calculator",
		Long: "Computes federal income tax for capital-gains-heavy scenarios: ordinary brackets, " +
			"0/15/20% preferential stacking, capital loss netting, NIIT and the foreign tax credit limit.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.settingsPath, "settings", "", "Path to settings file (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	pf.StringVarP(&opts.configuration, "config", "c", config.Config2026MFJ, "Filing configuration name")
	pf.StringVar(&opts.regulatoryFile, "regulatory-config", "", "Path to regulatory config file with filing configurations")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(calculateCmd(opts))
	root.AddCommand(simulateCmd(opts))
	root.AddCommand(heatmapCmd(opts))
	root.AddCommand(breakevenCmd(opts))
	root.AddCommand(whatIfCmd(opts))
	root.AddCommand(generateCmd(opts))
	root.AddCommand(compareCSVCmd(opts))
	root.AddCommand(validateCmd(opts))
	root.AddCommand(configsCmd(opts))
	root.AddCommand(versionCmd())
	return root
}

var rootCmd = newRootCmd()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
