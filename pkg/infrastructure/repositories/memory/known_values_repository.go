package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/repositories"
)

// KnownValuesRepository provides in-memory storage of supplied quantities
type KnownValuesRepository struct {
	mu     sync.RWMutex
	values map[entities.Symbol]decimal.Decimal
}

// NewKnownValuesRepository creates a repository holding a copy of values
func NewKnownValuesRepository(values map[entities.Symbol]decimal.Decimal) *KnownValuesRepository {
	repo := &KnownValuesRepository{
		values: make(map[entities.Symbol]decimal.Decimal, len(values)),
	}
	for sym, value := range values {
		repo.Set(sym, value)
	}
	return repo
}

// Verify interface compliance
var _ repositories.KnownValuesRepository = (*KnownValuesRepository)(nil)

// Set stores value for sym, replacing any earlier value. Invalid symbols
// are ignored.
func (r *KnownValuesRepository) Set(sym entities.Symbol, value decimal.Decimal) {
	if !sym.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[sym] = value
}

// Remove forgets sym
func (r *KnownValuesRepository) Remove(sym entities.Symbol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, sym)
}

// Len returns the number of stored values
func (r *KnownValuesRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// KnownValues returns a copy of the stored values
func (r *KnownValuesRepository) KnownValues() (map[entities.Symbol]decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make(map[entities.Symbol]decimal.Decimal, len(r.values))
	for sym, value := range r.values {
		values[sym] = value
	}
	return values, nil
}
