package entities

import (
	"github.com/shopspring/decimal"
)

// UnknownText is how an unknown quantity is rendered
const UnknownText = "unknown"

// Set holds the eleven wave quantities. Each slot is either unknown or holds a
// value rounded by the set's precision. Once known, a slot never changes.
type Set struct {
	precision Precision
	values    [SymbolCount]decimal.Decimal
	known     [SymbolCount]bool
}

// NewSet creates a set from the supplied known values. Symbols missing from
// the map start unknown; a supplied zero is a known value.
func NewSet(precision Precision, known map[Symbol]decimal.Decimal) *Set {
	set := &Set{precision: precision}
	for sym, value := range known {
		if !sym.Valid() {
			continue
		}
		set.values[sym] = precision.Round(value)
		set.known[sym] = true
	}
	return set
}

// Precision returns the rounding policy shared by every value in the set
func (s *Set) Precision() Precision {
	return s.precision
}

// Get returns the value of sym and whether it is known
func (s *Set) Get(sym Symbol) (decimal.Decimal, bool) {
	if !sym.Valid() || !s.known[sym] {
		return decimal.Zero, false
	}
	return s.values[sym], true
}

// Known reports whether sym holds a value
func (s *Set) Known(sym Symbol) bool {
	return sym.Valid() && s.known[sym]
}

// Fill sets sym to value if and only if sym is still unknown. It reports
// whether the slot was written; filling a known slot is a no-op.
func (s *Set) Fill(sym Symbol, value decimal.Decimal) bool {
	if !sym.Valid() || s.known[sym] {
		return false
	}
	s.values[sym] = s.precision.Round(value)
	s.known[sym] = true
	return true
}

// KnownSymbols lists the known quantities in canonical order
func (s *Set) KnownSymbols() []Symbol {
	var symbols []Symbol
	for _, sym := range Symbols() {
		if s.known[sym] {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// KnownCount returns how many slots hold a value
func (s *Set) KnownCount() int {
	count := 0
	for _, known := range s.known {
		if known {
			count++
		}
	}
	return count
}

// Values returns a copy of the known values keyed by symbol
func (s *Set) Values() map[Symbol]decimal.Decimal {
	values := make(map[Symbol]decimal.Decimal, SymbolCount)
	for _, sym := range s.KnownSymbols() {
		values[sym] = s.values[sym]
	}
	return values
}

// Format renders sym's value, or UnknownText
func (s *Set) Format(sym Symbol) string {
	value, ok := s.Get(sym)
	if !ok {
		return UnknownText
	}
	return s.precision.Format(value)
}

// Clone returns an independent copy of the set
func (s *Set) Clone() *Set {
	clone := *s
	return &clone
}

// Equal reports whether both sets know the same symbols with equal values
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return false
	}
	for _, sym := range Symbols() {
		a, aKnown := s.Get(sym)
		b, bKnown := other.Get(sym)
		if aKnown != bKnown {
			return false
		}
		if aKnown && !a.Equal(b) {
			return false
		}
	}
	return true
}
