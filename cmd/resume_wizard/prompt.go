package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// linePrompter asks for a resume name on a terminal. End of input dismisses
// the prompt; an empty line takes the suggestion.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) PromptName(_ context.Context, suggestion string) (string, bool, error) {
	_, _ = fmt.Fprintf(p.out, "Name for the new resume [%s]: ", suggestion)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("failed to read resume name: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(p.out)
		return "", false, nil
	}
	return strings.TrimSpace(line), true, nil
}
