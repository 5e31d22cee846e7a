// Package formulas holds the fixed table of wave formulas used to derive
// unknown quantities, one ordered fallback chain per target.
package formulas

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// ErrMissingInput is returned when a candidate reads an unknown quantity
var ErrMissingInput = errors.New("missing input")

type evalFunc func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error)

// Candidate is one way of computing a target from other quantities
type Candidate struct {
	Target     entities.Symbol
	Expression string
	Reads      []entities.Symbol
	eval       evalFunc
}

// Evaluate computes the candidate against set. It fails with ErrMissingInput
// when any read is unknown, or with the arithmetic error from the precision
// policy (division by zero, negative square root).
func (c Candidate) Evaluate(set *entities.Set) (decimal.Decimal, error) {
	in := make([]decimal.Decimal, len(c.Reads))
	for i, sym := range c.Reads {
		value, ok := set.Get(sym)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingInput, sym)
		}
		in[i] = value
	}

	value, err := c.eval(set.Precision(), in)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", c.Expression, err)
	}
	return value, nil
}

// String returns e.g. "T = t / n"
func (c Candidate) String() string {
	return fmt.Sprintf("%s = %s", c.Target, c.Expression)
}

// Table maps every target to its candidates in fallback order
type Table struct {
	chains [entities.SymbolCount][]Candidate
}

// NewTable builds a table from per-target candidate chains
func NewTable(chains map[entities.Symbol][]Candidate) *Table {
	table := &Table{}
	for target, candidates := range chains {
		if !target.Valid() {
			continue
		}
		chain := make([]Candidate, len(candidates))
		for i, c := range candidates {
			c.Target = target
			chain[i] = c
		}
		table.chains[target] = chain
	}
	return table
}

// Default returns the wave formula table
func Default() *Table {
	return NewTable(map[entities.Symbol][]Candidate{
		entities.Period: {
			Quotient(entities.Time, entities.Oscillations),
			Inverse(entities.Frequency),
			Quotient(entities.Wavelength, entities.PropagationSpeed),
		},
		entities.Time: {
			Product(entities.Period, entities.Oscillations),
			Quotient(entities.Oscillations, entities.Frequency),
		},
		entities.Oscillations: {
			Quotient(entities.Time, entities.Period),
			Product(entities.Frequency, entities.Time),
		},
		entities.Frequency: {
			Quotient(entities.Oscillations, entities.Time),
			Inverse(entities.Period),
			Quotient(entities.PropagationSpeed, entities.Wavelength),
		},
		entities.Wavelength: {
			Quotient(entities.PropagationSpeed, entities.Frequency),
			Product(entities.PropagationSpeed, entities.Period),
		},
		entities.PropagationSpeed: {
			Product(entities.Wavelength, entities.Frequency),
			Quotient(entities.Wavelength, entities.Period),
		},
		entities.StringSpeed: {
			RootOfQuotient(entities.Tension, entities.LinearDensity),
		},
		entities.LinearDensity: {
			Quotient(entities.Mass, entities.Length),
			QuotientBySquare(entities.Tension, entities.StringSpeed),
		},
		entities.Tension: {
			SquareTimes(entities.StringSpeed, entities.LinearDensity),
		},
		entities.Mass: {
			Product(entities.LinearDensity, entities.Length),
		},
		entities.Length: {
			Quotient(entities.Mass, entities.LinearDensity),
		},
	})
}

// Candidates returns the fallback chain for target
func (t *Table) Candidates(target entities.Symbol) []Candidate {
	if !target.Valid() {
		return nil
	}
	return t.chains[target]
}

// All returns every candidate, grouped by target in canonical order
func (t *Table) All() []Candidate {
	var all []Candidate
	for _, target := range entities.Symbols() {
		all = append(all, t.chains[target]...)
	}
	return all
}

// Quotient computes num / den
func Quotient(num, den entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("%s / %s", num, den),
		Reads:      []entities.Symbol{num, den},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			return p.Div(in[0], in[1])
		},
	}
}

// Product computes a * b
func Product(a, b entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("%s * %s", a, b),
		Reads:      []entities.Symbol{a, b},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			return p.Mul(in[0], in[1]), nil
		},
	}
}

// Inverse computes 1 / a
func Inverse(a entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("1 / %s", a),
		Reads:      []entities.Symbol{a},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			return p.Inverse(in[0])
		},
	}
}

// RootOfQuotient computes sqrt(num / den)
func RootOfQuotient(num, den entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("sqrt(%s / %s)", num, den),
		Reads:      []entities.Symbol{num, den},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			q, err := p.Div(in[0], in[1])
			if err != nil {
				return decimal.Zero, err
			}
			return p.Sqrt(q)
		},
	}
}

// QuotientBySquare computes num / den²
func QuotientBySquare(num, den entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("%s / %s²", num, den),
		Reads:      []entities.Symbol{num, den},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			return p.Div(in[0], p.Square(in[1]))
		},
	}
}

// SquareTimes computes a² * b
func SquareTimes(a, b entities.Symbol) Candidate {
	return Candidate{
		Expression: fmt.Sprintf("%s² * %s", a, b),
		Reads:      []entities.Symbol{a, b},
		eval: func(p entities.Precision, in []decimal.Decimal) (decimal.Decimal, error) {
			return p.Mul(p.Square(in[0]), in[1]), nil
		},
	}
}
