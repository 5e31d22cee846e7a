package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// Outcome records what happened when a candidate or target was attempted
type Outcome int

const (
	Applied Outcome = iota
	Failed
	Exhausted
)

// String method for Outcome enum
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// MarshalText lets outcomes appear by name in JSON output
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Attempt is one step of a resolution run. Exhausted attempts carry no
// candidate; they mark a target left unknown at the end of a pass.
type Attempt struct {
	Pass      int              `json:"pass"`
	Target    string           `json:"target"`
	Candidate string           `json:"candidate,omitempty"`
	Outcome   Outcome          `json:"outcome"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	Reason    string           `json:"reason,omitempty"`
}

// ResolutionResult contains the complete output of a resolution run
type ResolutionResult struct {
	RunID          string
	Set            *entities.Set
	InitiallyKnown []entities.Symbol
	Derived        []entities.Symbol
	Trace          []Attempt
}

// Unresolved lists the quantities still unknown after resolution
func (r *ResolutionResult) Unresolved() []entities.Symbol {
	var unresolved []entities.Symbol
	for _, sym := range entities.Symbols() {
		if !r.Set.Known(sym) {
			unresolved = append(unresolved, sym)
		}
	}
	return unresolved
}

// AppliedCandidate returns the expression that produced target, if derived
func (r *ResolutionResult) AppliedCandidate(target entities.Symbol) (string, bool) {
	for _, attempt := range r.Trace {
		if attempt.Target == target.String() && attempt.Outcome == Applied {
			return attempt.Candidate, true
		}
	}
	return "", false
}
