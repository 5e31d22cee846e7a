package resolution

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/wavecalc/pkg/application/dto"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
	"github.com/vsinha/wavecalc/pkg/infrastructure/events"
	"github.com/vsinha/wavecalc/pkg/infrastructure/logging"
	testhelpers "github.com/vsinha/wavecalc/pkg/infrastructure/testing"
)

func newSet(values map[entities.Symbol]string) *entities.Set {
	known := make(map[entities.Symbol]decimal.Decimal, len(values))
	for sym, v := range values {
		known[sym] = decimal.RequireFromString(v)
	}
	return entities.NewSet(entities.DefaultPrecision(), known)
}

func resolve(t *testing.T, values map[entities.Symbol]string) *dto.ResolutionResult {
	t.Helper()
	result, err := NewEngine(formulas.Default()).Resolve(context.Background(), newSet(values))
	require.NoError(t, err)
	return result
}

func assertValue(t *testing.T, set *entities.Set, sym entities.Symbol, want string) {
	t.Helper()
	got, ok := set.Get(sym)
	require.True(t, ok, "%s should be known", sym)
	assert.Equal(t, want, got.String(), "value of %s", sym)
}

func assertUnknown(t *testing.T, set *entities.Set, symbols ...entities.Symbol) {
	t.Helper()
	for _, sym := range symbols {
		assert.False(t, set.Known(sym), "%s should be unknown", sym)
	}
}

func TestEngine_FirstApplicableCandidateWins(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Time:         "10",
		entities.Oscillations: "2",
		entities.Frequency:    "5",
	})

	assertValue(t, result.Set, entities.Period, "5")
	candidate, ok := result.AppliedCandidate(entities.Period)
	require.True(t, ok)
	assert.Equal(t, "t / n", candidate)
}

func TestEngine_TwoPassPropagation(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Time:         "10",
		entities.Oscillations: "2",
	})

	assertValue(t, result.Set, entities.Period, "5")
	assertValue(t, result.Set, entities.Frequency, "0.2")
	assertUnknown(t, result.Set,
		entities.Wavelength, entities.PropagationSpeed, entities.StringSpeed,
		entities.Tension, entities.LinearDensity, entities.Mass, entities.Length)
	assert.Equal(t, []entities.Symbol{entities.Period, entities.Frequency}, result.Derived)
}

func TestEngine_SecondPassUsesValuesDerivedLater(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Mass:    "0.5",
		entities.Length:  "2",
		entities.Tension: "100",
	})

	assertValue(t, result.Set, entities.LinearDensity, "0.25")
	assertValue(t, result.Set, entities.StringSpeed, "20")

	var vPass int
	for _, attempt := range result.Trace {
		if attempt.Target == "v" && attempt.Outcome == dto.Applied {
			vPass = attempt.Pass
		}
	}
	assert.Equal(t, 2, vPass, "v depends on mi, which is only derived later in pass 1")
}

func TestEngine_PassBoundIsFixed(t *testing.T) {
	table := formulas.NewTable(map[entities.Symbol][]formulas.Candidate{
		entities.Period:       {formulas.Quotient(entities.Time, entities.Oscillations)},
		entities.Time:         {formulas.Quotient(entities.Oscillations, entities.Frequency)},
		entities.Oscillations: {formulas.Product(entities.Frequency, entities.Mass)},
	})
	engine := NewEngine(table)
	set := newSet(map[entities.Symbol]string{
		entities.Frequency: "2",
		entities.Mass:      "3",
	})

	_, err := engine.Resolve(context.Background(), set)
	require.NoError(t, err)

	assertValue(t, set, entities.Oscillations, "6")
	assertValue(t, set, entities.Time, "3")
	assertUnknown(t, set, entities.Period)

	_, err = engine.Resolve(context.Background(), set)
	require.NoError(t, err)
	assertValue(t, set, entities.Period, "0.5")
}

func TestEngine_DomainFailureLeavesTargetUnknown(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Tension:     "4",
		entities.StringSpeed: "0",
	})

	assertUnknown(t, result.Set, entities.LinearDensity, entities.Mass)
	assert.Equal(t, 2, result.Set.KnownCount())
	assert.Empty(t, result.Derived)

	var reasons []string
	var exhausted int
	for _, attempt := range result.Trace {
		if attempt.Target != "mi" {
			continue
		}
		switch attempt.Outcome {
		case dto.Failed:
			reasons = append(reasons, attempt.Reason)
		case dto.Exhausted:
			exhausted++
		}
	}
	require.Len(t, reasons, 4)
	assert.Contains(t, reasons[0], "missing input")
	assert.Contains(t, reasons[1], "division by zero")
	assert.Equal(t, 2, exhausted)
}

func TestEngine_NegativeSqrtFails(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Tension:       "-9",
		entities.LinearDensity: "1",
	})
	assertUnknown(t, result.Set, entities.StringSpeed)
}

func TestEngine_AllUnknownIsStable(t *testing.T) {
	result := resolve(t, nil)

	assert.Equal(t, 0, result.Set.KnownCount())
	assert.Empty(t, result.Derived)
	assert.Len(t, result.Unresolved(), entities.SymbolCount)

	outcomes := map[dto.Outcome]int{}
	for _, attempt := range result.Trace {
		outcomes[attempt.Outcome]++
	}
	assert.Equal(t, 0, outcomes[dto.Applied])
	assert.Equal(t, 2*len(formulas.Default().All()), outcomes[dto.Failed])
	assert.Equal(t, 2*entities.SymbolCount, outcomes[dto.Exhausted])
}

func TestEngine_RoundsDerivedValues(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.PropagationSpeed: "3",
		entities.Frequency:        "7",
	})

	assertValue(t, result.Set, entities.Wavelength, "0.429")
	assertValue(t, result.Set, entities.Period, "0.143")
}

func TestEngine_RoundingCompounds(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Frequency:    "3",
		entities.Oscillations: "2",
	})

	assertValue(t, result.Set, entities.Period, "0.333")
	// t = T * n uses the rounded period, not n / f
	assertValue(t, result.Set, entities.Time, "0.666")
}

func TestEngine_SuppliedZeroIsNeverOverwritten(t *testing.T) {
	result := resolve(t, map[entities.Symbol]string{
		entities.Tension:       "0",
		entities.StringSpeed:   "3",
		entities.LinearDensity: "2",
	})

	assertValue(t, result.Set, entities.Tension, "0")
}

func TestEngine_MonotoneAndIdempotent(t *testing.T) {
	scenarios := []map[entities.Symbol]string{
		{},
		{entities.Time: "10", entities.Oscillations: "2"},
		{entities.Time: "10", entities.Oscillations: "2", entities.Frequency: "5"},
		{entities.Wavelength: "0.5", entities.PropagationSpeed: "340"},
		{entities.Period: "0.01", entities.PropagationSpeed: "343", entities.Length: "0.65", entities.Mass: "0.002", entities.Tension: "70"},
		{entities.StringSpeed: "120", entities.LinearDensity: "0.005", entities.Length: "1.2"},
		{entities.Tension: "4", entities.StringSpeed: "0"},
		{entities.Frequency: "0", entities.Wavelength: "2"},
		{entities.Mass: "-2", entities.Length: "4", entities.Tension: "8"},
	}

	engine := NewEngine(formulas.Default())
	for _, values := range scenarios {
		set := newSet(values)
		before := set.Clone()

		first, err := engine.Resolve(context.Background(), set)
		require.NoError(t, err)

		for _, sym := range before.KnownSymbols() {
			want, _ := before.Get(sym)
			got, ok := first.Set.Get(sym)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "%s changed from %s to %s", sym, want, got)
		}

		afterFirst := first.Set.Clone()
		second, err := engine.Resolve(context.Background(), first.Set)
		require.NoError(t, err)
		assert.Empty(t, second.Derived, "scenario %v", values)
		assert.True(t, afterFirst.Equal(second.Set), "scenario %v", values)
	}
}

func TestEngine_FullyKnownSetIsUntouched(t *testing.T) {
	values := map[entities.Symbol]string{}
	for i, sym := range entities.Symbols() {
		values[sym] = decimal.NewFromInt(int64(i + 1)).String()
	}

	result := resolve(t, values)
	assert.Empty(t, result.Trace)
	assert.Empty(t, result.Derived)
	assertValue(t, result.Set, entities.Period, "1")
}

func TestEngine_PublishesTrace(t *testing.T) {
	store := events.NewInMemoryEventStore()
	engine := NewEngineWithConfig(formulas.Default(), EngineConfig{EventStore: store})

	result, err := engine.Resolve(context.Background(), newSet(map[entities.Symbol]string{
		entities.Time:         "10",
		entities.Oscillations: "2",
	}))
	require.NoError(t, err)

	stream, err := store.ReadEvents(result.RunID, 1)
	require.NoError(t, err)
	require.Len(t, stream, len(result.Trace)+2)

	assert.Equal(t, events.ResolutionStartedEvent, stream[0].Type())
	assert.Equal(t, []string{"t", "n"}, stream[0].Data().(events.ResolutionStarted).Known)

	first := stream[1].Data().(events.CandidateApplied)
	assert.Equal(t, "T", first.Attempt.Target)
	assert.Equal(t, "t / n", first.Attempt.Candidate)

	last := stream[len(stream)-1]
	assert.Equal(t, events.ResolutionFinishedEvent, last.Type())
	finished := last.Data().(events.ResolutionFinished)
	assert.Equal(t, []string{"T", "f"}, finished.Derived)
	assert.Len(t, finished.Unresolved, entities.SymbolCount-4)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(formulas.Default()).Resolve(ctx, newSet(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LogsToContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logging.WithLogger(context.Background(), logger)

	_, err := NewEngine(formulas.Default()).Resolve(ctx, newSet(map[entities.Symbol]string{
		entities.Time:         "10",
		entities.Oscillations: "2",
	}))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "pass complete")
	assert.Contains(t, buf.String(), "run_id=")
}

func TestEngine_Scenarios(t *testing.T) {
	engine := NewEngine(formulas.Default())

	for _, scenario := range testhelpers.Scenarios() {
		t.Run(scenario.Name, func(t *testing.T) {
			known, err := scenario.Repository().KnownValues()
			require.NoError(t, err)

			result, err := engine.Resolve(context.Background(), entities.NewSet(entities.DefaultPrecision(), known))
			require.NoError(t, err)

			for sym, want := range scenario.Expected {
				got, ok := result.Set.Get(sym)
				require.True(t, ok, "%s should be derived", sym)
				assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s = %s, want %s", sym, got, want)
			}
			assert.Equal(t, scenario.Unresolved, result.Unresolved())
			assert.Len(t, result.Derived, len(scenario.Expected))
		})
	}
}
