package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/application/dto"
	"github.com/vsinha/wavecalc/pkg/application/services/resolution"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
	"github.com/vsinha/wavecalc/pkg/infrastructure/events"
)

func main() {
	ctx := context.Background()

	// A guitar string: 0.65 m long, 3.2 g, tuned to 82.4 Hz under 71 N
	known := map[entities.Symbol]decimal.Decimal{
		entities.Length:    decimal.RequireFromString("0.65"),
		entities.Mass:      decimal.RequireFromString("0.0032"),
		entities.Tension:   decimal.NewFromInt(71),
		entities.Frequency: decimal.RequireFromString("82.4"),
	}
	set := entities.NewSet(entities.DefaultPrecision(), known)

	store := events.NewInMemoryEventStore()
	applied := 0
	err := store.Subscribe([]string{events.CandidateAppliedEvent}, &events.EventHandlerFunc{
		Types: []string{events.CandidateAppliedEvent},
		Fn: func(event events.Event) error {
			applied++
			return nil
		},
	})
	if err != nil {
		fmt.Printf("Subscribe failed: %v\n", err)
		return
	}

	engine := resolution.NewEngineWithConfig(formulas.Default(), resolution.EngineConfig{
		EventStore: store,
	})

	fmt.Println("Resolving a guitar string...")
	for _, sym := range set.KnownSymbols() {
		fmt.Printf("  given %-3s = %s\n", sym, set.Format(sym))
	}
	fmt.Println()

	result, err := engine.Resolve(ctx, set)
	if err != nil {
		fmt.Printf("Resolution failed: %v\n", err)
		return
	}

	fmt.Printf("Derived %d quantities (%d candidate events):\n", len(result.Derived), applied)
	for _, sym := range result.Derived {
		candidate, _ := result.AppliedCandidate(sym)
		fmt.Printf("  %-3s = %-8s %-5s via %s\n", sym, result.Set.Format(sym), sym.Unit(), candidate)
	}

	if unresolved := result.Unresolved(); len(unresolved) > 0 {
		fmt.Println()
		fmt.Println("Still unknown:")
		for _, sym := range unresolved {
			fmt.Printf("  %-3s %s\n", sym, sym.Info().Description)
		}
	}

	printFailures(result)
}

func printFailures(result *dto.ResolutionResult) {
	failures := 0
	for _, attempt := range result.Trace {
		if attempt.Outcome == dto.Failed {
			failures++
		}
	}
	fmt.Printf("\n%d candidates failed across %d passes\n", failures, resolution.Passes)
}
