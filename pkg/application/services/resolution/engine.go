// Package resolution derives unknown wave quantities from known ones by
// running the formula table over a Set in two fixed passes.
package resolution

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vsinha/wavecalc/pkg/application/dto"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
	"github.com/vsinha/wavecalc/pkg/infrastructure/events"
	"github.com/vsinha/wavecalc/pkg/infrastructure/logging"
)

// Passes is the fixed number of sweeps over the canonical order. Quantities
// that need a third round of propagation stay unknown.
const Passes = 2

// EngineConfig holds optional collaborators for the engine
type EngineConfig struct {
	// EventStore receives one event per attempt under the run id (nil = none)
	EventStore events.EventStore
	// Logger receives debug records for fills and pass summaries (nil = the
	// context logger)
	Logger *slog.Logger
}

// Engine implements the resolution loop
type Engine struct {
	table  *formulas.Table
	config EngineConfig
}

// NewEngine creates an engine over the given formula table
func NewEngine(table *formulas.Table) *Engine {
	return NewEngineWithConfig(table, EngineConfig{})
}

// NewEngineWithConfig creates an engine with custom collaborators
func NewEngineWithConfig(table *formulas.Table, config EngineConfig) *Engine {
	return &Engine{
		table:  table,
		config: config,
	}
}

// Resolve fills as many unknown slots of set as the formula table allows and
// returns the mutated set with the attempt trace. Unresolved quantities are
// not errors; the only error is a cancelled context.
func (e *Engine) Resolve(ctx context.Context, set *entities.Set) (*dto.ResolutionResult, error) {
	result := &dto.ResolutionResult{
		RunID:          uuid.NewString(),
		Set:            set,
		InitiallyKnown: set.KnownSymbols(),
	}
	logger := e.config.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger = logger.With(slog.String("run_id", result.RunID))

	e.publish(logger, events.NewResolutionStartedEvent(result.RunID, symbolNames(result.InitiallyKnown)))

	for pass := 1; pass <= Passes; pass++ {
		filled := 0
		for _, target := range entities.Symbols() {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("resolution cancelled in pass %d: %w", pass, err)
			}
			if set.Known(target) {
				continue
			}
			if e.resolveTarget(logger, result, pass, target) {
				filled++
			}
		}
		logger.Debug("pass complete",
			slog.Int("pass", pass),
			slog.Int("filled", filled),
			slog.Int("known", set.KnownCount()))
	}

	e.publish(logger, events.NewResolutionFinishedEvent(
		result.RunID,
		symbolNames(result.Derived),
		symbolNames(result.Unresolved()),
	))

	return result, nil
}

// resolveTarget tries target's candidates in fallback order and fills the
// slot from the first one that succeeds.
func (e *Engine) resolveTarget(logger *slog.Logger, result *dto.ResolutionResult, pass int, target entities.Symbol) bool {
	for _, candidate := range e.table.Candidates(target) {
		value, err := candidate.Evaluate(result.Set)
		if err != nil {
			e.record(logger, result, dto.Attempt{
				Pass:      pass,
				Target:    target.String(),
				Candidate: candidate.Expression,
				Outcome:   dto.Failed,
				Reason:    err.Error(),
			})
			continue
		}

		result.Set.Fill(target, value)
		filled, _ := result.Set.Get(target)
		result.Derived = append(result.Derived, target)
		e.record(logger, result, dto.Attempt{
			Pass:      pass,
			Target:    target.String(),
			Candidate: candidate.Expression,
			Outcome:   dto.Applied,
			Value:     &filled,
		})
		logger.Debug("quantity derived",
			slog.Int("pass", pass),
			slog.String("target", target.String()),
			slog.String("candidate", candidate.Expression),
			slog.String("value", filled.String()))
		return true
	}

	e.record(logger, result, dto.Attempt{
		Pass:    pass,
		Target:  target.String(),
		Outcome: dto.Exhausted,
	})
	return false
}

func (e *Engine) record(logger *slog.Logger, result *dto.ResolutionResult, attempt dto.Attempt) {
	result.Trace = append(result.Trace, attempt)
	e.publish(logger, events.NewAttemptEvent(result.RunID, attempt))
}

func (e *Engine) publish(logger *slog.Logger, event events.Event) {
	if e.config.EventStore == nil {
		return
	}
	if err := e.config.EventStore.AppendEvent(event.StreamID(), event); err != nil {
		logging.LogError(logger, "failed to publish resolution event", err,
			slog.String("event_type", event.Type()))
	}
}

func symbolNames(symbols []entities.Symbol) []string {
	names := make([]string, len(symbols))
	for i, sym := range symbols {
		names[i] = sym.String()
	}
	return names
}
