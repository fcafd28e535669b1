package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

type recorder struct {
	entries []Entry
	answers []string
	next    int
	buf     bytes.Buffer
}

// RecordingUI records output and answers prompts from a script. Prompt
// behaves like a user: a rejected answer is recorded as an Error and the next
// scripted answer is tried. Running out of answers panics.
type RecordingUI struct {
	rec   *recorder
	level int
}

var _ UI = (*RecordingUI)(nil)

func NewRecordingUI(answers ...string) *RecordingUI {
	return &RecordingUI{rec: &recorder{answers: answers}}
}

func (r *RecordingUI) record(method, value string) {
	r.rec.entries = append(r.rec.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) answer(method string) string {
	if r.rec.next >= len(r.rec.answers) {
		panic(fmt.Sprintf("RecordingUI: %s has no scripted answer left after %d", method, r.rec.next))
	}
	a := r.rec.answers[r.rec.next]
	r.rec.next++
	return a
}

func (r *RecordingUI) Style(s Styled) string { return s.Text }

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) { r.record("Section", title) }

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+"="+row[1])
	}
}

func (r *RecordingUI) Table(headers []string, rows [][]string) {
	r.record("Table", strings.Join(headers, "|"))
	for _, row := range rows {
		r.record("Row", strings.Join(row, "|"))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Prompt(label, hint string, validate Validator) string {
	r.record("Prompt", label)
	for {
		a := r.answer("Prompt " + label)
		r.record("Answer", a)
		if validate == nil {
			return a
		}
		err := validate(a)
		if err == nil {
			return a
		}
		r.record("Error", err.Error())
	}
}

func (r *RecordingUI) Interpret(value string) { r.record("Interpret", value) }

func (r *RecordingUI) Confirm(question string, defaultYes bool) bool {
	r.record("Confirm", question)
	switch strings.ToLower(strings.TrimSpace(r.answer("Confirm"))) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultYes
}

func (r *RecordingUI) Choose(question string, options []string) int {
	r.record("Choose", question)
	a := r.answer("Choose")
	idx, ok := pick(a, options)
	if !ok {
		panic(fmt.Sprintf("RecordingUI: %q is not one of %v", a, options))
	}
	return idx
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{rec: r.rec, level: r.level + 1}
}

func (r *RecordingUI) Writer() io.Writer { return &r.rec.buf }

// Entries returns every recorded call in order.
func (r *RecordingUI) Entries() []Entry { return r.rec.entries }

// Values returns the values recorded for method.
func (r *RecordingUI) Values(method string) []string {
	var out []string
	for _, e := range r.rec.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any entry contains substr, ignoring case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.rec.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output is everything written through Writer.
func (r *RecordingUI) Output() string { return r.rec.buf.String() }
