package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/application/dto"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
)

// Formats lists the supported output formats
var Formats = []string{"text", "json", "csv"}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Color     bool
	Writer    io.Writer
	Elapsed   time.Duration
}

// Generate renders result in the configured format. Output goes to
// config.Writer, or to wave_results.<ext> when OutputDir is set.
func Generate(result *dto.ResolutionResult, config Config) error {
	var (
		content []byte
		err     error
	)

	switch config.Format {
	case "text", "":
		content = generateTextOutput(result, config)
	case "json":
		content, err = generateJSONOutput(result, config)
	case "csv":
		content, err = generateCSVOutput(result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
	if err != nil {
		return err
	}

	if config.OutputDir == "" {
		_, err = config.writer().Write(content)
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "wave_results."+extension(config.Format))
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s output: %w", config.Format, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "Results written to: %s\n", filename)
	}
	return nil
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

func extension(format string) string {
	if format == "text" || format == "" {
		return "txt"
	}
	return format
}

// generateTextOutput creates the human-readable report
func generateTextOutput(result *dto.ResolutionResult, config Config) []byte {
	styles := NewStyles(config.Color && config.OutputDir == "")

	var b bytes.Buffer
	fmt.Fprintf(&b, "\n%s\n\n", styles.Banner("Results"))
	for _, sym := range entities.Symbols() {
		fmt.Fprintf(&b, "  %s\n", quantityLine(result.Set, sym, styles))
	}

	if config.Verbose {
		fmt.Fprintf(&b, "\n%s\n", styles.Label("Resolution trace"))
		fmt.Fprintf(&b, "  %s\n", styles.Dim(fmt.Sprintf("run %s, %d significant digits, %v",
			result.RunID, result.Set.Precision().Digits(), config.Elapsed)))
		for _, attempt := range result.Trace {
			fmt.Fprintf(&b, "  %s\n", traceLine(attempt, styles))
		}
	}

	return b.Bytes()
}

func traceLine(attempt dto.Attempt, styles Styles) string {
	switch attempt.Outcome {
	case dto.Applied:
		return fmt.Sprintf("pass %d  %-3s = %-13s %s %s", attempt.Pass, attempt.Target, attempt.Candidate,
			styles.Success("applied"), attempt.Value.String())
	case dto.Failed:
		return fmt.Sprintf("pass %d  %-3s = %-13s %s %s", attempt.Pass, attempt.Target, attempt.Candidate,
			styles.Dim("failed"), styles.Dim(attempt.Reason))
	default:
		return fmt.Sprintf("pass %d  %-3s   %s", attempt.Pass, attempt.Target, styles.Warning("left unknown"))
	}
}

type jsonQuantity struct {
	Symbol  string           `json:"symbol"`
	Name    string           `json:"name"`
	Unit    string           `json:"unit,omitempty"`
	Value   *decimal.Decimal `json:"value"`
	Derived bool             `json:"derived"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ResolutionResult, config Config) ([]byte, error) {
	derived := make(map[entities.Symbol]bool, len(result.Derived))
	for _, sym := range result.Derived {
		derived[sym] = true
	}

	jsonResult := struct {
		Metadata struct {
			RunID       string `json:"run_id"`
			Precision   int    `json:"precision"`
			GeneratedAt string `json:"generated_at"`
		} `json:"metadata"`
		Quantities []jsonQuantity `json:"quantities"`
		Unresolved []string       `json:"unresolved"`
		Trace      []dto.Attempt  `json:"trace,omitempty"`
	}{
		Quantities: make([]jsonQuantity, 0, entities.SymbolCount),
		Unresolved: make([]string, 0),
	}

	jsonResult.Metadata.RunID = result.RunID
	jsonResult.Metadata.Precision = result.Set.Precision().Digits()
	jsonResult.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)

	for _, sym := range entities.Symbols() {
		info := sym.Info()
		q := jsonQuantity{
			Symbol:  info.Abbreviation,
			Name:    info.Description,
			Unit:    info.Unit,
			Derived: derived[sym],
		}
		if value, ok := result.Set.Get(sym); ok {
			q.Value = &value
		} else {
			jsonResult.Unresolved = append(jsonResult.Unresolved, info.Abbreviation)
		}
		jsonResult.Quantities = append(jsonResult.Quantities, q)
	}

	if config.Verbose {
		jsonResult.Trace = result.Trace
	}

	jsonBytes, err := json.MarshalIndent(jsonResult, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// generateCSVOutput creates one row per quantity
func generateCSVOutput(result *dto.ResolutionResult) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	header := []string{"symbol", "name", "value", "unit", "known"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, sym := range entities.Symbols() {
		info := sym.Info()
		value := ""
		if v, ok := result.Set.Get(sym); ok {
			value = result.Set.Precision().Format(v)
		}
		record := []string{
			info.Abbreviation,
			info.Description,
			value,
			info.Unit,
			fmt.Sprintf("%t", result.Set.Known(sym)),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return b.Bytes(), nil
}
