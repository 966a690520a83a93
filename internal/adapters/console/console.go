// Package console renders the human-facing run output and reads answers to
// prompts. Status lines go to stdout; prompts read from stdin.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.trai.ch/zerr"
)

// Console implements ports.Console on a writer/reader pair.
type Console struct {
	out io.Writer
	in  *bufio.Reader
}

// New creates a console bound to stdout and stdin.
func New() *Console {
	return NewWith(os.Stdout, os.Stdin)
}

// NewWith creates a console on explicit streams, for tests.
func NewWith(out io.Writer, in io.Reader) *Console {
	return &Console{out: out, in: bufio.NewReader(in)}
}

func (c *Console) Running(id string) {
	fmt.Fprintf(c.out, "[%s] %s\n", color.CyanString("run "), id)
}

func (c *Console) Finished(id string) {
	fmt.Fprintf(c.out, "[%s] %s\n", color.GreenString("done"), id)
}

func (c *Console) Skipped(id string) {
	fmt.Fprintf(c.out, "[%s] %s\n", color.YellowString("skip"), id)
}

func (c *Console) Declined(id string) {
	fmt.Fprintf(c.out, "[%s] %s: confirmation declined, aborting\n", color.YellowString("stop"), id)
}

func (c *Console) Task(line string) {
	fmt.Fprintf(c.out, "  %s %s\n", color.HiBlackString("$"), line)
}

func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "[%s] %s\n", color.RedString("fail"), fmt.Sprintf(format, args...))
}

// Confirm asks a yes/no question. Only an explicit yes answer confirms.
func (c *Console) Confirm(msg string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N] ", msg)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Ask prompts for a line of input.
func (c *Console) Ask(msg string) (string, error) {
	fmt.Fprintf(c.out, "%s ", msg)
	return c.readLine()
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", zerr.Wrap(err, "failed to read answer")
	}
	return strings.TrimSpace(line), nil
}
