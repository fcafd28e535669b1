package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	indentUnit      = "  "
	sectionWidth    = 60
	promptPrefix    = "> "
	interpretPrefix = "→ "
)

var titleCaser = cases.Title(language.English)

type TerminalUI struct {
	level       int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	interactive bool
}

var _ UI = (*TerminalUI)(nil)

// NewTerminalUI writes to stdout and reads stdin. Colours and the spinner
// are on only when stdout is a terminal.
func NewTerminalUI() *TerminalUI {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	return NewTerminalUIWith(os.Stdout, os.Stdin, tty)
}

func NewTerminalUIWith(out io.Writer, in io.Reader, tty bool) *TerminalUI {
	return &TerminalUI{
		out:         out,
		in:          bufio.NewReader(in),
		au:          aurora.NewAurora(tty),
		interactive: tty,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.level)
}

func (u *TerminalUI) line(s string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), s)
}

func (u *TerminalUI) Style(s Styled) string {
	switch s.Severity {
	case SeverityGood:
		return u.au.Green(s.Text).String()
	case SeverityNotice:
		return u.au.Yellow(s.Text).String()
	case SeverityBad:
		return u.au.Red(s.Text).String()
	case SeverityEmphasis:
		return u.au.Bold(s.Text).String()
	}
	return s.Text
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.line(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.line(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.line(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.line(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Section(title string) {
	titled := " " + titleCaser.String(title) + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	rule := strings.Repeat("─", bars/2) + titled + strings.Repeat("─", bars-bars/2)
	fmt.Fprintf(u.out, "\n%s%s\n", u.prefix(), u.au.Bold(rule).String())
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		if w := visibleWidth(r[0]); w > width {
			width = w
		}
	}
	for _, r := range rows {
		u.line(padRight(r[0], width) + "  " + r[1])
	}
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padRight(s string, w int) string {
	if n := visibleWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}
	widths := make([]int, ncols)
	measure := func(cells []string) {
		for i, c := range cells {
			if w := visibleWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, r := range rows {
		measure(r)
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	rule := func(left, mid, right string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return borderStyle.Render(left + strings.Join(parts, mid) + right)
	}
	row := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + padRight(cell, widths[i]) + " "
		}
		bar := borderStyle.Render("│")
		return bar + strings.Join(parts, bar) + bar
	}

	u.line(rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		bold := make([]string, len(headers))
		for i, h := range headers {
			bold[i] = u.au.Bold(h).String()
		}
		u.line(row(bold))
		u.line(rule("├", "┼", "┤"))
	}
	for _, r := range rows {
		u.line(row(r))
	}
	u.line(rule("└", "┴", "┘"))
}

func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

func (u *TerminalUI) Prompt(label, hint string, validate Validator) string {
	u.line(u.au.Bold(label).String())
	if hint != "" {
		u.line(u.au.Faint(hint).String())
	}
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, err := u.in.ReadString('\n')
		answer := strings.TrimRight(text, "\r\n")
		if validate == nil {
			return answer
		}
		verr := validate(answer)
		if verr == nil {
			return answer
		}
		if err != nil {
			// input closed, nothing more will come
			u.Error("%s", verr)
			return answer
		}
		u.Error("%s", verr)
	}
}

func (u *TerminalUI) Interpret(value string) {
	u.line(indentUnit + interpretPrefix + u.au.Cyan(value).String())
}

func (u *TerminalUI) Confirm(question string, defaultYes bool) bool {
	choices := "[y/N]"
	if defaultYes {
		choices = "[Y/n]"
	}
	answer := u.Prompt(question+" "+choices, "", func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("answer y or n")
	})
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return defaultYes
}

func (u *TerminalUI) Choose(question string, options []string) int {
	for i, opt := range options {
		u.Info("%d. %s", i+1, opt)
	}
	answer := u.Prompt(fmt.Sprintf("%s [1-%d]", question, len(options)), "", func(s string) error {
		if _, ok := pick(s, options); !ok {
			return fmt.Errorf("enter a number between 1 and %d", len(options))
		}
		return nil
	})
	idx, _ := pick(answer, options)
	return idx
}

// pick reads a 1-based number or an option's exact text.
func pick(answer string, options []string) (int, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	for i, opt := range options {
		if strings.EqualFold(answer, opt) {
			return i, true
		}
	}
	return 0, false
}

func (u *TerminalUI) Indent() UI {
	child := *u
	child.level++
	return &child
}

func (u *TerminalUI) Writer() io.Writer {
	if u.level == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
