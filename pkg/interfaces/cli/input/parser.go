// Package input turns user-supplied symbol:value text into known quantities.
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// ErrMalformedToken is returned for text that is not of the form symbol:value
var ErrMalformedToken = errors.New("expected symbol:value")

// ParseToken parses one symbol:value pair such as "lb:0,5"
func ParseToken(token string) (entities.Symbol, decimal.Decimal, error) {
	key, value, found := strings.Cut(strings.TrimSpace(token), ":")
	if !found {
		return 0, decimal.Zero, fmt.Errorf("%w, got %q", ErrMalformedToken, token)
	}

	sym, err := entities.ParseSymbol(strings.TrimSpace(key))
	if err != nil {
		return 0, decimal.Zero, err
	}

	parsed, err := entities.ParseValue(value)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("%s: %w", sym, err)
	}

	return sym, parsed, nil
}

// ParseTokens parses every token, later values for a symbol replacing
// earlier ones. The first invalid token aborts parsing.
func ParseTokens(tokens []string) (map[entities.Symbol]decimal.Decimal, error) {
	known := make(map[entities.Symbol]decimal.Decimal, len(tokens))
	for i, token := range tokens {
		sym, value, err := ParseToken(token)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		known[sym] = value
	}
	return known, nil
}
