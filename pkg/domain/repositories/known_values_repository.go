package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// KnownValuesRepository provides the quantities a user supplied
type KnownValuesRepository interface {
	KnownValues() (map[entities.Symbol]decimal.Decimal, error)
}

// KnownValuesFunc adapts a function to KnownValuesRepository
type KnownValuesFunc func() (map[entities.Symbol]decimal.Decimal, error)

// KnownValues calls f
func (f KnownValuesFunc) KnownValues() (map[entities.Symbol]decimal.Decimal, error) {
	return f()
}

// MergeKnownValues reads every repository in order. A later repository
// replaces the values of earlier ones for the same symbol.
func MergeKnownValues(repos ...KnownValuesRepository) (map[entities.Symbol]decimal.Decimal, error) {
	merged := make(map[entities.Symbol]decimal.Decimal)
	for _, repo := range repos {
		values, err := repo.KnownValues()
		if err != nil {
			return nil, err
		}
		for sym, value := range values {
			merged[sym] = value
		}
	}
	return merged, nil
}
