// Package ui is the terminal surface of the calldata commands: styled
// output, tables and prompts for parameters the user did not pass on the
// command line.
package ui

import (
	"encoding/json"
	"io"
)

type Severity uint8

const (
	SeverityPlain Severity = iota
	SeverityGood
	SeverityNotice
	SeverityBad
	SeverityEmphasis
)

// Styled is text with a severity. It marshals to JSON as the bare text.
type Styled struct {
	Text     string
	Severity Severity
}

func (s Styled) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// Validator rejects a prompt answer with a message the user sees before
// being asked again.
type Validator func(answer string) error

// UI is implemented by TerminalUI for real sessions and by RecordingUI in
// tests. Child UIs from Indent share their parent's input and output.
type UI interface {
	Style(s Styled) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Section prints a title-cased separator line.
	Section(title string)
	// KeyValue prints label/value rows with the values aligned.
	KeyValue(rows [][2]string)
	// Table prints a bordered table; headers may be empty.
	Table(headers []string, rows [][]string)
	// Spinner shows msg until the returned stop function is called.
	Spinner(msg string) func()

	// Prompt prints label and hint, then reads answers until validate
	// accepts one. A nil validate accepts anything.
	Prompt(label, hint string, validate Validator) string
	// Interpret echoes how the last answer was understood.
	Interpret(value string)
	Confirm(question string, defaultYes bool) bool
	// Choose returns the 0-based index of the picked option.
	Choose(question string, options []string) int

	Indent() UI
	// Writer prefixes every line with the current indentation.
	Writer() io.Writer
}
