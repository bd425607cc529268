package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type readResult struct {
	line string
	err  error
}

// Prompter writes a prompt and blocks on the next line of input
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer

	// lines carries the result of the one read in flight, if any
	lines   chan readResult
	reading bool
}

// NewPrompter creates a prompter reading lines from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) (*Prompter, error) {
	if in == nil {
		return nil, ErrNilInput
	}

	if out == nil {
		return nil, ErrNilOutput
	}

	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
		lines:  make(chan readResult, 1),
	}, nil
}

// Prompt writes message without a newline and returns the next line without
// its line ending. io.EOF is returned once the input is exhausted, and
// ctx.Err() as soon as ctx is done even while the read is still blocked.
// A line that arrives after a cancel is kept for the next Prompt.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.WriteString(p.out, message); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	if !p.reading {
		p.reading = true
		go func() {
			line, err := p.reader.ReadString('\n')
			p.lines <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-p.lines:
		p.reading = false
		return lineOf(result)
	}
}

func lineOf(result readResult) (string, error) {
	if result.err != nil {
		// A last line without a newline still counts
		if errors.Is(result.err, io.EOF) && result.line != "" {
			return strings.TrimRight(result.line, "\r\n"), nil
		}
		return "", result.err
	}

	return strings.TrimRight(result.line, "\r\n"), nil
}
