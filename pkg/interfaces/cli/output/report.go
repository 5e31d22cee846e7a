package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
)

// ErrInvalidReportName is returned for empty names or names containing a path
var ErrInvalidReportName = errors.New("invalid report name")

// reportBlocks groups the quantities of the saved report: timing, wave,
// string dynamics, string body.
var reportBlocks = [][]entities.Symbol{
	{entities.Period, entities.Time, entities.Oscillations},
	{entities.Frequency, entities.Wavelength, entities.PropagationSpeed},
	{entities.StringSpeed, entities.Tension},
	{entities.LinearDensity, entities.Mass, entities.Length},
}

// RenderReport renders the plain text saved by WriteReport
func RenderReport(set *entities.Set) string {
	var b strings.Builder
	b.WriteString("Results\n\n")
	for _, block := range reportBlocks {
		for _, sym := range block {
			b.WriteString(quantityLine(set, sym, NewStyles(false)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteReport saves the report as <dir>/<name>.txt and returns the path
func WriteReport(dir, name string, set *entities.Set) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidReportName, name)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	path := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(path, []byte(RenderReport(set)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// WriteSymbolList prints every abbreviation with its meaning and unit
func WriteSymbolList(w io.Writer) {
	for _, sym := range entities.Symbols() {
		info := sym.Info()
		if info.Unit == "" {
			fmt.Fprintf(w, "%s: %s\n", info.Abbreviation, info.Label)
			continue
		}
		fmt.Fprintf(w, "%s: %s (%s)\n", info.Abbreviation, info.Label, info.Unit)
	}
}

// WriteFormulaTable prints each target's candidates in fallback order
func WriteFormulaTable(w io.Writer, table *formulas.Table) {
	for _, target := range entities.Symbols() {
		var expressions []string
		for _, c := range table.Candidates(target) {
			expressions = append(expressions, c.Expression)
		}
		fmt.Fprintf(w, "%-3s <- %s\n", target, strings.Join(expressions, " | "))
	}
}

// quantityLine renders "Label: value unit"
func quantityLine(set *entities.Set, sym entities.Symbol, styles Styles) string {
	info := sym.Info()
	value := set.Format(sym)
	if !set.Known(sym) {
		value = styles.Unknown(value)
	}
	line := styles.Label(info.Label+":") + " " + value
	if info.Unit != "" {
		line += " " + info.Unit
	}
	return line
}

// WriteDependents prints, for each quantity, the targets whose formulas read it
func WriteDependents(w io.Writer, dependents map[entities.Symbol][]entities.Symbol) {
	for _, sym := range entities.Symbols() {
		targets := dependents[sym]
		if len(targets) == 0 {
			continue
		}
		names := make([]string, len(targets))
		for i, target := range targets {
			names[i] = target.String()
		}
		fmt.Fprintf(w, "%-3s -> %s\n", sym, strings.Join(names, ", "))
	}
}
