// Package replio contains identifiers used for reading lines of interactive
// input when driving a Parser from the command line: either through GNU
// readline, for a real TTY session with history and line editing, or
// directly from a plain io.Reader, for piped/scripted input.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one line of input at a time. ReadLine returns io.EOF once
// input is exhausted.
type Reader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectReader reads lines from any io.Reader without escape-sequence
// handling. Suitable for piped or scripted input.
type DirectReader struct {
	r *bufio.Reader
}

// NewDirectReader wraps r for line-at-a-time reading.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine reads the next line, trimmed of its trailing newline.
func (dr *DirectReader) ReadLine() (string, error) {
	line, err := dr.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op; DirectReader owns no readline resources.
func (dr *DirectReader) Close() error {
	return nil
}

// InteractiveReader reads lines from stdin via GNU readline, giving history
// and line editing. Must have Close called on it before disposal.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader initializes readline with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveReader{rl: rl}, nil
}

// ReadLine blocks for the next line of input.
func (ir *InteractiveReader) ReadLine() (string, error) {
	return ir.rl.Readline()
}

// Close tears down readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}
