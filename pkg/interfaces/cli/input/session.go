package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/wavecalc/pkg/domain/entities"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/output"
)

const (
	prompt   = ">>> "
	quitWord = "q"
)

// ErrInvalidChoice is returned when a menu answer is not one of the options
var ErrInvalidChoice = errors.New("invalid choice")

// Session drives the interactive terminal dialogue
type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  output.Styles
}

// NewSession creates a session reading answers from in and writing prompts to out
func NewSession(in io.Reader, out io.Writer, styles output.Styles) *Session {
	return &Session{
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  styles,
	}
}

// Start prints the banner and offers the abbreviation list
func (s *Session) Start() error {
	fmt.Fprintln(s.out, s.styles.Banner("Wave Calculator!"))
	fmt.Fprint(s.out, "\nWould you like to see the list of abbreviations or start right away?\n\n")
	fmt.Fprint(s.out, "[0] - Show the list of abbreviations\n[1] - Start without the list\n\n")

	choice, err := s.ask()
	if err != nil {
		return err
	}

	switch choice {
	case "0":
		fmt.Fprint(s.out, "\n\nThe list reads as\nabbreviation: meaning\nType entries as abbreviation:value\n")
		output.WriteSymbolList(s.out)
	case "1":
	default:
		fmt.Fprintln(s.out, "Enter a valid option. Try again.")
		return fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}
	return nil
}

// ReadValues prompts for symbol:value entries until the user types q or the
// input ends. Invalid entries are reported and asked for again.
func (s *Session) ReadValues() (map[entities.Symbol]decimal.Decimal, error) {
	fmt.Fprintf(s.out, "\nEnter the values you know using the abbreviations. Type %q when done.\n\n", quitWord)

	known := make(map[entities.Symbol]decimal.Decimal)
	for {
		line, err := s.ask()
		if errors.Is(err, io.EOF) {
			return known, nil
		}
		if err != nil {
			return nil, err
		}
		if line == quitWord {
			return known, nil
		}
		if line == "" {
			continue
		}

		sym, value, err := ParseToken(line)
		if err != nil {
			fmt.Fprintf(s.out, "%s %v\n", s.styles.Warning("Enter a valid entry!"), err)
			continue
		}
		known[sym] = value
	}
}

// AskSave asks whether the results should be written to a file and under
// which name. An answer other than the two options cancels saving.
func (s *Session) AskSave() (string, bool, error) {
	fmt.Fprint(s.out, "\n\nDo you want to write the results to a text file?\n\n[0] - Yes\n[1] - No\n\n")

	choice, err := s.ask()
	if err != nil {
		return "", false, err
	}

	switch choice {
	case "0":
	case "1":
		return "", false, nil
	default:
		fmt.Fprintln(s.out, "Invalid option. Operation cancelled.")
		return "", false, nil
	}

	for {
		fmt.Fprint(s.out, "\nWhat should the file be called?\n\n")
		name, err := s.ask()
		if err != nil {
			return "", false, err
		}
		if name != "" {
			return name, true, nil
		}
	}
}

// Saved confirms where the report was written
func (s *Session) Saved(path string) {
	fmt.Fprintf(s.out, "\n%s\n", s.styles.Success(fmt.Sprintf("Results saved to %s!", path)))
}

// Farewell closes the dialogue
func (s *Session) Farewell() {
	fmt.Fprint(s.out, "\nThanks for using wavecalc!\n")
}

// ask prints the prompt and returns the next trimmed line
func (s *Session) ask() (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}
