package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks questions on a line-oriented terminal.
type LinePrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewLinePrompter reads answers from in and writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &LinePrompter{In: br, Out: out}
}

// ReadLine returns the next input line without its newline. ok is false at
// end of input.
func (p *LinePrompter) ReadLine() (line string, ok bool) {
	s, err := p.In.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	return strings.TrimRight(s, "\r\n"), true
}

// CancelInput is the answer that abandons a prompt.
const CancelInput = "-"

// Prompt shows msg and returns the answer. An empty answer takes the
// suggestion; CancelInput or end of input means no answer.
func (p *LinePrompter) Prompt(msg, suggestion string) (string, bool) {
	hint := Subtle.Sprintf("(%s cancels)", CancelInput)
	if suggestion != "" {
		fmt.Fprintf(p.Out, "  %s %s %s ", msg, Subtle.Sprintf("[%s]", suggestion), hint)
	} else {
		fmt.Fprintf(p.Out, "  %s %s ", msg, hint)
	}
	line, ok := p.ReadLine()
	if !ok {
		return "", false
	}
	switch strings.TrimSpace(line) {
	case CancelInput:
		return "", false
	case "":
		return suggestion, true
	}
	return line, true
}

// Confirm asks a yes/no question, defaulting to no.
func (p *LinePrompter) Confirm(msg string) bool {
	fmt.Fprintf(p.Out, "  %s %s ", msg, Subtle.Sprint("[y/N]"))
	line, ok := p.ReadLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
