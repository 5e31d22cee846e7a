package formulas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

func newSet(values map[entities.Symbol]string) *entities.Set {
	known := make(map[entities.Symbol]decimal.Decimal, len(values))
	for sym, v := range values {
		known[sym] = decimal.RequireFromString(v)
	}
	return entities.NewSet(entities.DefaultPrecision(), known)
}

func TestDefault_FallbackOrder(t *testing.T) {
	table := Default()

	expected := map[entities.Symbol][]string{
		entities.Period:           {"t / n", "1 / f", "lb / V"},
		entities.Time:             {"T * n", "n / f"},
		entities.Oscillations:     {"t / T", "f * t"},
		entities.Frequency:        {"n / t", "1 / T", "V / lb"},
		entities.Wavelength:       {"V / f", "V * T"},
		entities.PropagationSpeed: {"lb * f", "lb / T"},
		entities.StringSpeed:      {"sqrt(F / mi)"},
		entities.LinearDensity:    {"m / l", "F / v²"},
		entities.Tension:          {"v² * mi"},
		entities.Mass:             {"mi * l"},
		entities.Length:           {"m / mi"},
	}

	for _, target := range entities.Symbols() {
		var expressions []string
		for _, c := range table.Candidates(target) {
			assert.Equal(t, target, c.Target)
			expressions = append(expressions, c.Expression)
		}
		assert.Equal(t, expected[target], expressions, "target %s", target)
	}

	assert.Len(t, table.All(), 20)
	assert.Nil(t, table.Candidates(entities.Symbol(-1)))
}

func TestCandidate_Evaluate(t *testing.T) {
	table := Default()

	testCases := []struct {
		name   string
		target entities.Symbol
		index  int
		values map[entities.Symbol]string
		want   string
	}{
		{"period from time and count", entities.Period, 0, map[entities.Symbol]string{entities.Time: "10", entities.Oscillations: "2"}, "5"},
		{"period from frequency", entities.Period, 1, map[entities.Symbol]string{entities.Frequency: "5"}, "0.2"},
		{"wavelength rounded", entities.Wavelength, 0, map[entities.Symbol]string{entities.PropagationSpeed: "3", entities.Frequency: "7"}, "0.429"},
		{"string speed", entities.StringSpeed, 0, map[entities.Symbol]string{entities.Tension: "100", entities.LinearDensity: "0.01"}, "100"},
		{"density from tension", entities.LinearDensity, 1, map[entities.Symbol]string{entities.Tension: "4", entities.StringSpeed: "2"}, "1"},
		{"tension", entities.Tension, 0, map[entities.Symbol]string{entities.StringSpeed: "3", entities.LinearDensity: "0.5"}, "4.5"},
		{"mass", entities.Mass, 0, map[entities.Symbol]string{entities.LinearDensity: "0.02", entities.Length: "1.5"}, "0.03"},
		{"negative values accepted", entities.Length, 0, map[entities.Symbol]string{entities.Mass: "-2", entities.LinearDensity: "4"}, "-0.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := table.Candidates(tc.target)[tc.index]
			got, err := c.Evaluate(newSet(tc.values))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestCandidate_EvaluateFailures(t *testing.T) {
	table := Default()

	_, err := table.Candidates(entities.Period)[0].Evaluate(newSet(map[entities.Symbol]string{entities.Time: "10"}))
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Contains(t, err.Error(), "n")

	_, err = table.Candidates(entities.LinearDensity)[1].Evaluate(newSet(map[entities.Symbol]string{
		entities.Tension: "4", entities.StringSpeed: "0",
	}))
	assert.ErrorIs(t, err, entities.ErrDivisionByZero)

	_, err = table.Candidates(entities.StringSpeed)[0].Evaluate(newSet(map[entities.Symbol]string{
		entities.Tension: "-4", entities.LinearDensity: "1",
	}))
	assert.ErrorIs(t, err, entities.ErrNegativeSqrt)

	_, err = table.Candidates(entities.Period)[1].Evaluate(newSet(map[entities.Symbol]string{entities.Frequency: "0"}))
	assert.ErrorIs(t, err, entities.ErrDivisionByZero)
}

func TestCandidate_String(t *testing.T) {
	assert.Equal(t, "F = v² * mi", Default().Candidates(entities.Tension)[0].String())
}
