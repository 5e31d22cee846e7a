package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/domain/repositories"
)

// Loader handles loading known quantities from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadKnownValues loads symbol,value rows from a CSV file
func (l *Loader) LoadKnownValues(filename string) (map[entities.Symbol]decimal.Decimal, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open values file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadKnownValues(file)
}

// ReadKnownValues parses CSV with a symbol,value header. Values may use ','
// as the decimal separator, quoted or not: an unquoted "T,0,5" row is read
// as T = 0.5. A repeated symbol replaces the earlier row.
func (l *Loader) ReadKnownValues(r io.Reader) (map[entities.Symbol]decimal.Decimal, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read values CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("values CSV must have a header row")
	}

	// Validate header
	expectedHeader := []string{"symbol", "value"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("values CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	known := make(map[entities.Symbol]decimal.Decimal, len(records)-1)
	for i, record := range records[1:] {
		if len(record) == len(expectedHeader)+1 {
			record = []string{record[0], record[1] + "," + record[2]}
		}
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("values CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		sym, value, err := parseKnownValue(record)
		if err != nil {
			return nil, fmt.Errorf("values CSV row %d: %w", i+2, err)
		}

		known[sym] = value
	}

	return known, nil
}

func parseKnownValue(record []string) (entities.Symbol, decimal.Decimal, error) {
	sym, err := entities.ParseSymbol(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, decimal.Zero, err
	}

	value, err := entities.ParseValue(record[1])
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid value for %s: %w", sym, err)
	}

	return sym, value, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}

// FileRepository reads known quantities from one CSV file
type FileRepository struct {
	loader   *Loader
	filename string
}

// NewFileRepository creates a repository over filename
func NewFileRepository(filename string) *FileRepository {
	return &FileRepository{loader: NewLoader(), filename: filename}
}

// Verify interface compliance
var _ repositories.KnownValuesRepository = (*FileRepository)(nil)

// KnownValues loads the file on every call
func (r *FileRepository) KnownValues() (map[entities.Symbol]decimal.Decimal, error) {
	return r.loader.LoadKnownValues(r.filename)
}
