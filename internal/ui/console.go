package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ErrInputClosed is returned by prompts once the input stream is exhausted
var ErrInputClosed = errors.New("input closed")

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// Console reads answers line by line and writes prompts and messages
type Console struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewConsole creates a console over in and out. Spinners are only shown
// when out is a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.out = colorable.NewColorable(f)
		c.tty = true
	}
	return c
}

// Writer returns the console's output stream
func (c *Console) Writer() io.Writer {
	return c.out
}

// IsTerminal reports whether output goes to an interactive terminal
func (c *Console) IsTerminal() bool {
	return c.tty
}

// Println writes a line to the console
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text to the console
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Info writes a highlighted informational line
func (c *Console) Info(format string, a ...interface{}) {
	fmt.Fprintln(c.out, cyan(fmt.Sprintf(format, a...)))
}

// Success writes a line in green
func (c *Console) Success(format string, a ...interface{}) {
	fmt.Fprintln(c.out, green(fmt.Sprintf(format, a...)))
}

// Warn writes a warning line in yellow
func (c *Console) Warn(format string, a ...interface{}) {
	fmt.Fprintln(c.out, yellow(fmt.Sprintf(format, a...)))
}

// Error writes an error line in red
func (c *Console) Error(format string, a ...interface{}) {
	fmt.Fprintln(c.out, red(fmt.Sprintf(format, a...)))
}

// Dim writes a de-emphasized line
func (c *Console) Dim(format string, a ...interface{}) {
	fmt.Fprintln(c.out, faint(fmt.Sprintf(format, a...)))
}

// ReadLine prints prompt and returns the next input line without its line
// terminator. ErrInputClosed is returned at end of input.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		fmt.Fprintln(c.out)
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt asks for a free-form value; empty input selects def
func (c *Console) Prompt(label, def string) (string, error) {
	prompt := bold(label) + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s %s: ", bold(label), faint("("+def+")"))
	}
	answer, err := c.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}

// Select lists options and returns the 0-based index of the chosen one.
// Input is a 1-based number; empty input selects def.
func (c *Console) Select(label string, options []string, def int) (int, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, bold(label))
	for i, opt := range options {
		marker := " "
		if i == def {
			marker = cyan(">")
		}
		fmt.Fprintf(c.out, "  %s [%d] %s\n", marker, i+1, opt)
	}

	for {
		answer, err := c.ReadLine(fmt.Sprintf("Select option %s: ", faint(fmt.Sprintf("(%d)", def+1))))
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return def, nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Error("Invalid selection. Try again.")
	}
}

// Confirm asks a yes/no question; empty input selects def
func (c *Console) Confirm(label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := c.ReadLine(fmt.Sprintf("%s %s: ", bold(label), hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Error("Please enter y or n.")
	}
}

// Spin runs fn while showing message next to a spinner
func (c *Console) Spin(message string, fn func() error) error {
	if !c.tty {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(c.out))
	s.Suffix = " " + cyan(message)
	s.Start()
	defer s.Stop()
	return fn()
}
