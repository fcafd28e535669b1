package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func TestTerminalPromptRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader("\n  \n0xabc\n"), false)

	got := u.Prompt("to (address)", "Must be a 0x address", notEmpty)
	assert.Equal(t, "0xabc", got)
	assert.Equal(t, 2, strings.Count(out.String(), "value is required"))
	assert.Contains(t, out.String(), "Must be a 0x address")
}

func TestTerminalPromptStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader(""), false)
	assert.Equal(t, "", u.Prompt("x", "", notEmpty))
}

func TestTerminalConfirmAndChoose(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader("maybe\nY\n\n7\n2\n"), false)

	assert.True(t, u.Confirm("Continue?", false))
	assert.False(t, u.Confirm("Again?", false))
	assert.Equal(t, 1, u.Choose("Which one", []string{"a", "b"}))
	assert.Contains(t, out.String(), "answer y or n")
	assert.Contains(t, out.String(), "enter a number between 1 and 2")
}

func TestTerminalTableAligns(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader(""), false)
	u.Table([]string{"Name", "Value"}, [][]string{{"to", "0x1111"}, {"amount", "1"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	width := visibleWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, visibleWidth(l), l)
	}
}

func TestTerminalSectionAndIndent(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader(""), false)
	u.Section("decoded call")
	u.Indent().Info("nested")
	_, _ = u.Indent().Writer().Write([]byte("a\nb\n"))

	s := out.String()
	assert.Contains(t, s, " Decoded Call ")
	assert.Contains(t, s, "\n  nested\n")
	assert.Contains(t, s, "  a\n  b\n")
}

func TestTerminalKeyValue(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWith(&out, strings.NewReader(""), false)
	u.KeyValue([][2]string{{"To", "0x1"}, {"Function", "transfer"}})
	assert.Equal(t, "To        0x1\nFunction  transfer\n", out.String())
}

func TestRecordingPrompt(t *testing.T) {
	r := NewRecordingUI("", "0xabc", "2")
	assert.Equal(t, "0xabc", r.Indent().Prompt("to", "", notEmpty))
	assert.Equal(t, []string{"value is required"}, r.Values("Error"))
	assert.Equal(t, 1, r.Choose("pick", []string{"a", "b"}))
	assert.True(t, r.HasMessage("VALUE IS"))
	assert.Panics(t, func() { r.Prompt("more", "", nil) })
}

func TestStyledJSON(t *testing.T) {
	b, err := Styled{Text: "ok", Severity: SeverityGood}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(b))
	assert.Equal(t, "ok", NewRecordingUI().Style(Styled{Text: "ok", Severity: SeverityBad}))
}
