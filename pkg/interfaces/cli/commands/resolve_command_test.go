package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/infrastructure/events"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/input"
)

func runResolveCommand(t *testing.T, config Config, stdin string) (string, *ResolveCommand, error) {
	t.Helper()
	if config.Precision == 0 {
		config.Precision = entities.DefaultSignificantDigits
	}
	var out bytes.Buffer
	cmd := NewResolveCommand(config, strings.NewReader(stdin), &out, nil)
	err := cmd.Execute(context.Background())
	return out.String(), cmd, err
}

func TestResolveCommand_Tokens(t *testing.T) {
	out, _, err := runResolveCommand(t, Config{
		Values: []string{"t:10", "n:2"},
		Format: "csv",
	}, "")
	require.NoError(t, err)

	assert.Contains(t, out, "symbol,name,value,unit,known\n")
	assert.Contains(t, out, "T,period,5,s,true\n")
	assert.Contains(t, out, "n,number of oscillations,2,,true\n")
	assert.Contains(t, out, "f,frequency,0.2,Hz,true\n")
	assert.Contains(t, out, "lb,wavelength (lambda),,m,false\n")
}

func TestResolveCommand_CommaDecimalSeparator(t *testing.T) {
	out, _, err := runResolveCommand(t, Config{
		Values: []string{"m:0,5", "l:2"},
		Format: "csv",
	}, "")
	require.NoError(t, err)

	assert.Contains(t, out, "mi,linear mass density,0.25,kg/m,true\n")
}

func TestResolveCommand_InvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   error
	}{
		{"missing separator", []string{"t10"}, input.ErrMalformedToken},
		{"unknown symbol", []string{"x:1"}, entities.ErrUnknownSymbol},
		{"bad number", []string{"t:ten"}, entities.ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runResolveCommand(t, Config{Values: tt.values, Format: "text"}, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolveCommand_InvalidPrecision(t *testing.T) {
	var out bytes.Buffer
	cmd := NewResolveCommand(Config{Precision: -1, Values: []string{"t:1"}}, strings.NewReader(""), &out, nil)
	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "significant digits must be positive")
}

func TestResolveCommand_CSVInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,value\nV,3\nf,7\n"), 0644))

	out, _, err := runResolveCommand(t, Config{InputFile: path, Format: "json"}, "")
	require.NoError(t, err)

	var decoded struct {
		Quantities []struct {
			Symbol  string           `json:"symbol"`
			Value   *decimal.Decimal `json:"value"`
			Derived bool             `json:"derived"`
		} `json:"quantities"`
		Unresolved []string `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Quantities, entities.SymbolCount)

	wavelength := decoded.Quantities[entities.Wavelength]
	assert.Equal(t, "lb", wavelength.Symbol)
	require.NotNil(t, wavelength.Value)
	assert.True(t, wavelength.Value.Equal(decimal.RequireFromString("0.429")))
	assert.True(t, wavelength.Derived)
	assert.Contains(t, decoded.Unresolved, "mi")
}

func TestResolveCommand_ArgumentsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,value\nt,10\nn,2\n"), 0644))

	out, _, err := runResolveCommand(t, Config{
		InputFile: path,
		Values:    []string{"n:5"},
		Format:    "csv",
	}, "")
	require.NoError(t, err)

	assert.Contains(t, out, "T,period,2,s,true\n")
}

func TestResolveCommand_MissingInputFile(t *testing.T) {
	_, _, err := runResolveCommand(t, Config{
		InputFile: filepath.Join(t.TempDir(), "missing.csv"),
		Format:    "text",
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading values")
}

func TestResolveCommand_RecordsTrace(t *testing.T) {
	_, cmd, err := runResolveCommand(t, Config{Values: []string{"t:10", "n:2"}, Format: "text"}, "")
	require.NoError(t, err)

	all, err := cmd.EventStore().ReadAllEvents(0)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.Equal(t, events.ResolutionStartedEvent, all[0].Type())
	assert.Equal(t, events.ResolutionFinishedEvent, all[len(all)-1].Type())

	streamID := all[0].StreamID()
	for _, event := range all {
		assert.Equal(t, streamID, event.StreamID())
	}
}

func TestResolveCommand_VerboseText(t *testing.T) {
	out, _, err := runResolveCommand(t, Config{
		Values:  []string{"t:10", "n:2"},
		Format:  "text",
		Verbose: true,
	}, "")
	require.NoError(t, err)

	assert.Contains(t, out, "  Period: 5 s\n")
	assert.Contains(t, out, "Resolution trace")
	assert.Contains(t, out, "left unknown")
}

func TestResolveCommand_SavesNamedReport(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runResolveCommand(t, Config{
		Values:     []string{"t:10", "n:2"},
		Format:     "text",
		ReportDir:  dir,
		ReportName: "pendulum",
		Verbose:    true,
	}, "")
	require.NoError(t, err)

	path := filepath.Join(dir, "pendulum.txt")
	assert.Contains(t, out, "Report saved to: "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Results\n\nPeriod: 5 s\nTime: 10 s\nNumber of oscillations: 2\n"))
}

func TestResolveCommand_InteractiveSession(t *testing.T) {
	dir := t.TempDir()
	stdin := strings.Join([]string{
		"1",
		"t:10",
		"x:3",
		"n:2",
		"q",
		"0",
		"run1",
	}, "\n") + "\n"

	out, _, err := runResolveCommand(t, Config{
		Format:      "text",
		ReportDir:   dir,
		Interactive: true,
	}, stdin)
	require.NoError(t, err)

	assert.Contains(t, out, "Wave Calculator!")
	assert.Contains(t, out, "Enter a valid entry!")
	assert.Contains(t, out, "  Frequency: 0.2 Hz\n")
	assert.Contains(t, out, "Thanks for using wavecalc!")

	content, err := os.ReadFile(filepath.Join(dir, "run1.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Frequency: 0.2 Hz\n")
}

func TestResolveCommand_InteractiveDeclinesSave(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runResolveCommand(t, Config{
		Format:      "text",
		ReportDir:   dir,
		Interactive: true,
	}, "0\nV:3\nf:7\nq\n1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "lb: Wavelength (m)")
	assert.Contains(t, out, "  Wavelength: 0.429 m\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveCommand_InteractiveInvalidChoice(t *testing.T) {
	_, _, err := runResolveCommand(t, Config{Format: "text", Interactive: true}, "7\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, input.ErrInvalidChoice)
}

func TestResolveCommand_InteractiveAfterValues(t *testing.T) {
	out, _, err := runResolveCommand(t, Config{
		Values:      []string{"f:4", "t:10"},
		Format:      "text",
		Interactive: true,
	}, "1\nf:5\nq\n1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Wave Calculator!")
	assert.Contains(t, out, "  Frequency: 5 Hz\n")
	assert.Contains(t, out, "  Period: 0.2 s\n")
	assert.Contains(t, out, "  Number of oscillations: 50\n")
}

func TestResolveCommand_ValuesWithoutInteractive(t *testing.T) {
	out, _, err := runResolveCommand(t, Config{
		Values: []string{"f:4"},
		Format: "text",
	}, "")
	require.NoError(t, err)

	assert.NotContains(t, out, "Wave Calculator!")
	assert.Contains(t, out, "  Period: 0.25 s\n")
}
