package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrInvalidNumber = errors.New("invalid number")
)

// Symbol identifies one of the eleven wave quantities.
// The declaration order is the canonical resolution order.
type Symbol int

const (
	Period Symbol = iota
	Time
	Oscillations
	Frequency
	Wavelength
	PropagationSpeed
	StringSpeed
	Tension
	LinearDensity
	Mass
	Length
)

// SymbolCount is the number of quantities held by a Set
const SymbolCount = int(Length) + 1

// SymbolInfo describes how a quantity is written, named and measured
type SymbolInfo struct {
	Abbreviation string
	Description  string
	Label        string
	Unit         string
}

var symbolInfo = [SymbolCount]SymbolInfo{
	Period:           {"T", "period", "Period", "s"},
	Time:             {"t", "elapsed time", "Time", "s"},
	Oscillations:     {"n", "number of oscillations", "Number of oscillations", ""},
	Frequency:        {"f", "frequency", "Frequency", "Hz"},
	Wavelength:       {"lb", "wavelength (lambda)", "Wavelength", "m"},
	PropagationSpeed: {"V", "wave propagation speed", "Wave propagation speed", "m/s"},
	StringSpeed:      {"v", "wave speed on a string", "Wave speed on string", "m/s"},
	Tension:          {"F", "tension force on the string", "String tension", "N"},
	LinearDensity:    {"mi", "linear mass density", "Linear mass density", "kg/m"},
	Mass:             {"m", "string mass", "String mass", "kg"},
	Length:           {"l", "string length", "String length", "m"},
}

// Symbols returns every quantity in canonical resolution order
func Symbols() []Symbol {
	symbols := make([]Symbol, SymbolCount)
	for i := range symbols {
		symbols[i] = Symbol(i)
	}
	return symbols
}

// Valid reports whether s names one of the eleven quantities
func (s Symbol) Valid() bool {
	return s >= Period && s <= Length
}

// Info returns the naming and unit metadata for s
func (s Symbol) Info() SymbolInfo {
	if !s.Valid() {
		return SymbolInfo{Abbreviation: "?", Description: "unknown", Label: "Unknown"}
	}
	return symbolInfo[s]
}

// String returns the abbreviation users type, e.g. "lb" for the wavelength
func (s Symbol) String() string {
	return s.Info().Abbreviation
}

// Unit returns the SI unit, empty for dimensionless quantities
func (s Symbol) Unit() string {
	return s.Info().Unit
}

// ParseSymbol looks up a quantity by abbreviation. Matching is case sensitive
// since T/t, V/v and M/m name different quantities.
func ParseSymbol(abbreviation string) (Symbol, error) {
	for i, info := range symbolInfo {
		if info.Abbreviation == abbreviation {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, abbreviation)
}

// ParseValue parses a decimal number accepting either '.' or ',' as the
// decimal separator.
func ParseValue(text string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if normalized == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidNumber)
	}
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	return value, nil
}
