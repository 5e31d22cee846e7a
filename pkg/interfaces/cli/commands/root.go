package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vsinha/wavecalc/pkg/infrastructure/config"
	"github.com/vsinha/wavecalc/pkg/infrastructure/logging"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/output"
	"golang.org/x/term"
)

type rootOptions struct {
	configPath  string
	logLevel    string
	logFile     string
	inputFile   string
	outputDir   string
	reportDir   string
	reportName  string
	format      string
	color       string
	precision   int
	verbose     bool
	interactive bool
}

// NewRootCommand builds the wavecalc command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "wavecalc [symbol:value ...]",
		Short: "Derive wave quantities from the ones you know",
		Long: `wavecalc derives the unknown quantities of a periodic wave from a partial set
of known values: period, time, oscillation count, frequency, wavelength,
propagation speed, string wave speed, tension, linear mass density, string
mass and string length.

Known values are given as symbol:value pairs (',' or '.' as decimal
separator), read from a CSV file with --input, or typed at the prompt when
stdin is a terminal and nothing else was supplied.

Examples:
  wavecalc t:10 n:2                 # period and frequency
  wavecalc V:3 f:7 --format json    # wavelength as JSON
  wavecalc --input guitar.csv --report guitar
  wavecalc symbols                  # list the abbreviations`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts)
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "path to a TOML config file (default ./"+config.DefaultFile+" if present)")
	persistent.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	persistent.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")

	flags := root.Flags()
	flags.StringVarP(&opts.inputFile, "input", "i", "", "CSV file of known values (header: symbol,value)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "write wave_results.<ext> to this directory instead of stdout")
	flags.StringVar(&opts.reportDir, "report-dir", "", "directory for saved reports")
	flags.StringVarP(&opts.reportName, "report", "r", "", "save the report as <report-dir>/<name>.txt")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: text, json, csv")
	flags.StringVar(&opts.color, "color", "", "color output: auto, always, never")
	flags.IntVarP(&opts.precision, "precision", "p", 0, "significant digits kept by every calculation")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print the resolution trace")
	flags.BoolVar(&opts.interactive, "interactive", false, "prompt for values after any arguments or --input file, even when stdin is not a terminal")

	root.AddCommand(newSymbolsCommand(), newFormulasCommand(), newInitConfigCommand())
	return root
}

// Execute runs the command tree against the process arguments and returns
// the exit code
func Execute() int {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		styles := output.NewStyles(isTerminal(os.Stderr))
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.Error("Error:"), err)
		return 1
	}
	return 0
}

func runResolve(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, closeLogger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	interactive := opts.interactive ||
		(len(args) == 0 && opts.inputFile == "" && isTerminal(cmd.InOrStdin()))

	command := NewResolveCommand(Config{
		Values:      args,
		InputFile:   opts.inputFile,
		OutputDir:   cfg.OutputDir,
		ReportDir:   cfg.ReportDir,
		ReportName:  cfg.ReportName,
		Format:      cfg.Format,
		Precision:   cfg.Precision,
		Verbose:     cfg.Verbose,
		Color:       colorEnabled(cfg.Color, cmd.OutOrStdout()),
		Interactive: interactive,
	}, cmd.InOrStdin(), cmd.OutOrStdout(), logger)

	ctx := logging.WithLogger(cmd.Context(), logger)
	return command.Execute(ctx)
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("report-dir") {
		cfg.ReportDir = opts.reportDir
	}
	if flags.Changed("report") {
		cfg.ReportName = opts.reportName
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
	if flags.Changed("precision") {
		cfg.Precision = opts.precision
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("validation error: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	logger, closer, err := logging.New(logging.Options{
		Level:    levelVar,
		Terminal: cmd.ErrOrStderr(),
		File:     cfg.LogFile,
	})
	if err != nil {
		return nil, nil, err
	}

	return logger, func() {
		if err := closer.Close(); err != nil {
			logging.LogError(logger, "failed to close log file", err)
		}
	}, nil
}

func colorEnabled(mode string, w any) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
