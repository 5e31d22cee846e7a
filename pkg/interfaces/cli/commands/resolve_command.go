package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/application/services/resolution"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/repositories"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
	"github.com/vsinha/wavecalc/pkg/infrastructure/events"
	"github.com/vsinha/wavecalc/pkg/infrastructure/logging"
	"github.com/vsinha/wavecalc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/wavecalc/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/input"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/output"
)

// Config holds configuration for the resolve command
type Config struct {
	Values      []string
	InputFile   string
	OutputDir   string
	ReportDir   string
	ReportName  string
	Format      string
	Precision   int
	Verbose     bool
	Color       bool
	Interactive bool
}

// ResolveCommand reads known quantities, derives the rest and reports them
type ResolveCommand struct {
	config Config
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	store  events.EventStore
}

// NewResolveCommand creates a resolve command reading answers from in and
// writing reports to out
func NewResolveCommand(config Config, in io.Reader, out io.Writer, logger *slog.Logger) *ResolveCommand {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ResolveCommand{
		config: config,
		in:     in,
		out:    out,
		logger: logger,
		store:  events.NewInMemoryEventStoreWithLogger(logger),
	}
}

// EventStore exposes the trace events recorded by Execute
func (c *ResolveCommand) EventStore() events.EventStore {
	return c.store
}

// Execute runs the resolve command
func (c *ResolveCommand) Execute(ctx context.Context) error {
	precision, err := entities.NewPrecision(c.config.Precision)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	styles := output.NewStyles(c.config.Color)

	var session *input.Session
	if c.config.Interactive {
		session = input.NewSession(c.in, c.out, styles)
		if err := session.Start(); err != nil {
			return err
		}
	}

	known, err := c.loadKnownValues(session)
	if err != nil {
		return err
	}

	table := formulas.Default()
	if err := formulas.NewTableValidator().Validate(table).Err(); err != nil {
		return err
	}

	engine := resolution.NewEngineWithConfig(table, resolution.EngineConfig{
		EventStore: c.store,
		Logger:     c.logger,
	})

	start := time.Now()
	result, err := engine.Resolve(ctx, entities.NewSet(precision, known))
	if err != nil {
		return fmt.Errorf("failed to resolve quantities: %w", err)
	}
	elapsed := time.Since(start)

	logging.LogOperation(c.logger, "resolution finished",
		slog.String("run_id", result.RunID),
		slog.Int("supplied", len(result.InitiallyKnown)),
		slog.Int("derived", len(result.Derived)),
		slog.Int("unresolved", len(result.Unresolved())),
		slog.Duration("duration", elapsed))

	err = output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Color:     c.config.Color,
		Writer:    c.out,
		Elapsed:   elapsed,
	})
	if err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	name := c.config.ReportName
	if name == "" && session != nil {
		var save bool
		name, save, err = session.AskSave()
		if err != nil {
			return err
		}
		if !save {
			name = ""
		}
	}

	if name != "" {
		path, err := output.WriteReport(c.config.ReportDir, name, result.Set)
		if err != nil {
			logging.LogError(c.logger, "failed to save report", err, slog.String("name", name))
			return err
		}
		logging.LogOperation(c.logger, "report saved", slog.String("path", path))
		if session != nil {
			session.Saved(path)
		} else if c.config.Verbose {
			fmt.Fprintf(c.out, "Report saved to: %s\n", path)
		}
	}

	if session != nil {
		session.Farewell()
	}
	return nil
}

// loadKnownValues merges the CSV file, then command-line tokens, then the
// interactive session. Later sources replace earlier values for a symbol.
func (c *ResolveCommand) loadKnownValues(session *input.Session) (map[entities.Symbol]decimal.Decimal, error) {
	var sources []repositories.KnownValuesRepository

	if c.config.InputFile != "" {
		file := csv.NewFileRepository(c.config.InputFile)
		sources = append(sources, repositories.KnownValuesFunc(func() (map[entities.Symbol]decimal.Decimal, error) {
			values, err := file.KnownValues()
			if err != nil {
				return nil, fmt.Errorf("error loading values: %w", err)
			}
			return values, nil
		}))
	}

	fromArgs, err := input.ParseTokens(c.config.Values)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	sources = append(sources, memory.NewKnownValuesRepository(fromArgs))

	if session != nil {
		sources = append(sources, repositories.KnownValuesFunc(session.ReadValues))
	}

	known, err := repositories.MergeKnownValues(sources...)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("known values loaded", slog.Int("count", len(known)))
	return known, nil
}
