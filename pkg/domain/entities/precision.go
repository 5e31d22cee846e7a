package entities

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultSignificantDigits is the precision used when none is configured
const DefaultSignificantDigits = 3

// guardDigits are carried through division before the final rounding
const guardDigits = 6

const maxSqrtIterations = 200

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNegativeSqrt   = errors.New("square root of a negative value")
)

// Precision is the rounding policy applied to every stored, computed and
// displayed quantity. Results are rounded to a fixed number of significant
// digits with round-half-even, so chained derivations compound rounding.
type Precision struct {
	digits int32
}

// NewPrecision creates a policy keeping the given number of significant digits
func NewPrecision(digits int) (Precision, error) {
	if digits < 1 {
		return Precision{}, fmt.Errorf("significant digits must be positive, got %d", digits)
	}
	return Precision{digits: int32(digits)}, nil
}

// DefaultPrecision returns the three significant digit policy
func DefaultPrecision() Precision {
	return Precision{digits: DefaultSignificantDigits}
}

// Digits returns the number of significant digits kept
func (p Precision) Digits() int {
	if p.digits == 0 {
		return DefaultSignificantDigits
	}
	return int(p.digits)
}

// Round rounds d to the policy's significant digits
func (p Precision) Round(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	places := int32(p.Digits()) - 1 - adjustedExponent(d)
	return d.RoundBank(places)
}

// Mul returns a*b rounded
func (p Precision) Mul(a, b decimal.Decimal) decimal.Decimal {
	return p.Round(a.Mul(b))
}

// Div returns a/b rounded, failing on a zero divisor
func (p Precision) Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	if a.IsZero() {
		return decimal.Zero, nil
	}
	places := int32(p.Digits()) + guardDigits - (adjustedExponent(a) - adjustedExponent(b))
	return p.Round(a.DivRound(b, places)), nil
}

// Inverse returns 1/a rounded
func (p Precision) Inverse(a decimal.Decimal) (decimal.Decimal, error) {
	return p.Div(decimal.NewFromInt(1), a)
}

// Square returns a² rounded
func (p Precision) Square(a decimal.Decimal) decimal.Decimal {
	return p.Mul(a, a)
}

// Sqrt returns the rounded square root of a, failing on negative input.
// The root is refined by Newton iteration in decimal, so it holds for any
// number of digits and any exponent.
func (p Precision) Sqrt(a decimal.Decimal) (decimal.Decimal, error) {
	if a.IsNegative() {
		return decimal.Zero, ErrNegativeSqrt
	}
	if a.IsZero() {
		return decimal.Zero, nil
	}

	// a = m * 10^exp with exp even and 1 <= m < 100
	exp := adjustedExponent(a)
	if exp%2 != 0 {
		exp--
	}
	seed := int64(2)
	if a.Shift(-exp).GreaterThanOrEqual(decimal.NewFromInt(10)) {
		seed = 5
	}

	places := int32(p.Digits()) + guardDigits - exp/2
	half := decimal.New(5, -1)
	root := decimal.New(seed, exp/2)
	// after the first step the iterates decrease towards the root
	for i := 0; i < maxSqrtIterations; i++ {
		next := root.Add(a.DivRound(root, places)).Mul(half).Round(places)
		if i > 0 && next.GreaterThanOrEqual(root) {
			break
		}
		root = next
	}
	return p.Round(root), nil
}

// Format renders d rounded to the policy
func (p Precision) Format(d decimal.Decimal) string {
	return p.Round(d).String()
}

// adjustedExponent is the power of ten of the most significant digit of d
func adjustedExponent(d decimal.Decimal) int32 {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	return d.Exponent() + int32(digits) - 1
}
