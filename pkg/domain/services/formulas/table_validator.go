package formulas

import (
	"fmt"

	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// ValidationResult contains the problems found in a formula table
type ValidationResult struct {
	UncoveredTargets    []entities.Symbol
	SelfReferences      []Candidate
	DuplicateCandidates []Candidate
	Errors              []string
}

// Valid reports whether no problems were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first problem as an error, or nil
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("invalid formula table: %s (and %d more)", r.Errors[0], len(r.Errors)-1)
}

// TableValidator checks the structural integrity of a formula table
type TableValidator struct{}

// NewTableValidator creates a new table validator
func NewTableValidator() *TableValidator {
	return &TableValidator{}
}

// Validate checks that every target has at least one candidate, no candidate
// reads its own target or an invalid symbol, and no expression is repeated
// within a chain.
func (v *TableValidator) Validate(table *Table) *ValidationResult {
	result := &ValidationResult{}

	for _, target := range entities.Symbols() {
		chain := table.Candidates(target)
		if len(chain) == 0 {
			result.UncoveredTargets = append(result.UncoveredTargets, target)
			result.Errors = append(result.Errors, fmt.Sprintf("no candidates for %s", target))
			continue
		}

		seen := make(map[string]bool, len(chain))
		for _, c := range chain {
			if c.eval == nil {
				result.Errors = append(result.Errors, fmt.Sprintf("candidate %s has no evaluation", c))
			}
			if seen[c.Expression] {
				result.DuplicateCandidates = append(result.DuplicateCandidates, c)
				result.Errors = append(result.Errors, fmt.Sprintf("duplicate candidate %s", c))
			}
			seen[c.Expression] = true

			for _, read := range c.Reads {
				if !read.Valid() {
					result.Errors = append(result.Errors, fmt.Sprintf("candidate %s reads invalid symbol %d", c, int(read)))
				}
				if read == target {
					result.SelfReferences = append(result.SelfReferences, c)
					result.Errors = append(result.Errors, fmt.Sprintf("candidate %s reads its own target", c))
				}
			}
		}
	}

	return result
}

// Dependents maps each quantity to the targets whose candidates read it,
// in canonical order without repeats.
func (v *TableValidator) Dependents(table *Table) map[entities.Symbol][]entities.Symbol {
	dependents := make(map[entities.Symbol][]entities.Symbol)

	for _, target := range entities.Symbols() {
		for _, c := range table.Candidates(target) {
			for _, read := range c.Reads {
				if !containsSymbol(dependents[read], target) {
					dependents[read] = append(dependents[read], target)
				}
			}
		}
	}

	return dependents
}

func containsSymbol(symbols []entities.Symbol, sym entities.Symbol) bool {
	for _, s := range symbols {
		if s == sym {
			return true
		}
	}
	return false
}
