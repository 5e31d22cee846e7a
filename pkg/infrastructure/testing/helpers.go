// Package testing provides wave scenarios shared by package tests.
package testing

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/infrastructure/repositories/memory"
)

// Scenario is a set of supplied quantities and the values expected after
// resolution at the default precision
type Scenario struct {
	Name       string
	Known      map[entities.Symbol]string
	Expected   map[entities.Symbol]string
	Unresolved []entities.Symbol
}

// Scenarios returns the reference scenarios
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name: "oscillator",
			Known: map[entities.Symbol]string{
				entities.Time:         "10",
				entities.Oscillations: "2",
			},
			Expected: map[entities.Symbol]string{
				entities.Period:    "5",
				entities.Frequency: "0.2",
			},
			Unresolved: []entities.Symbol{
				entities.Wavelength, entities.PropagationSpeed, entities.StringSpeed,
				entities.Tension, entities.LinearDensity, entities.Mass, entities.Length,
			},
		},
		{
			Name: "travelling wave",
			Known: map[entities.Symbol]string{
				entities.PropagationSpeed: "3",
				entities.Frequency:        "7",
			},
			Expected: map[entities.Symbol]string{
				entities.Period:     "0.143",
				entities.Wavelength: "0.429",
			},
			Unresolved: []entities.Symbol{
				entities.Time, entities.Oscillations, entities.StringSpeed,
				entities.Tension, entities.LinearDensity, entities.Mass, entities.Length,
			},
		},
		{
			Name: "guitar string",
			Known: map[entities.Symbol]string{
				entities.Length:    "0.65",
				entities.Mass:      "0.0032",
				entities.Tension:   "71",
				entities.Frequency: "82.4",
			},
			Expected: map[entities.Symbol]string{
				entities.Period:        "0.0121",
				entities.LinearDensity: "0.00492",
				entities.StringSpeed:   "120",
			},
			Unresolved: []entities.Symbol{
				entities.Time, entities.Oscillations, entities.Wavelength, entities.PropagationSpeed,
			},
		},
	}
}

// KnownValues parses the supplied quantities
func (s Scenario) KnownValues() map[entities.Symbol]decimal.Decimal {
	known := make(map[entities.Symbol]decimal.Decimal, len(s.Known))
	for sym, text := range s.Known {
		known[sym] = decimal.RequireFromString(text)
	}
	return known
}

// Repository returns the supplied quantities as an in-memory repository
func (s Scenario) Repository() *memory.KnownValuesRepository {
	return memory.NewKnownValuesRepository(s.KnownValues())
}

// Set builds a quantity set from the supplied quantities
func (s Scenario) Set(precision entities.Precision) *entities.Set {
	return entities.NewSet(precision, s.KnownValues())
}
