// Package input gets command-sentence input from CLI or other sources,
// structurally ported from TunaQuest's internal/input: the same
// direct-reader/readline-reader split, retargeted from a multi-token
// game-command grammar to plain whole-sentence reads, since
// internal/nlparse tokenizes and parses a sentence itself rather than
// needing a verb/args split at the input layer.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// SentenceReader reads successive natural-language command sentences
// from some source.
type SentenceReader interface {
	// ReadSentence blocks until a non-blank line is available, io.EOF is
	// reached, or another read error occurs.
	ReadSentence() (string, error)

	// AllowBlank sets whether a blank line is returned as-is instead of
	// being skipped. Off by default.
	AllowBlank(allow bool)

	// Close releases any resources the reader holds.
	Close() error
}

// DirectReader implements SentenceReader by reading lines from any
// io.Reader without any escape/control-sequence handling.
//
// Create one with NewDirectReader rather than constructing it directly.
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader wraps r in a buffered DirectReader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadSentence implements SentenceReader.
func (dr *DirectReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank implements SentenceReader.
func (dr *DirectReader) AllowBlank(allow bool) { dr.blanksAllowed = allow }

// Close implements SentenceReader. DirectReader owns no teardown-requiring
// resources; it exists to satisfy the interface uniformly with
// InteractiveReader.
func (dr *DirectReader) Close() error { return nil }

// InteractiveReader implements SentenceReader using GNU-readline-style
// line editing and history, for use directly against a TTY.
//
// Create one with NewInteractiveReader rather than constructing it
// directly.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewInteractiveReader initializes readline with the given prompt. The
// returned InteractiveReader must have Close called on it before disposal.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl, prompt: prompt}, nil
}

// ReadSentence implements SentenceReader.
func (ir *InteractiveReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank implements SentenceReader.
func (ir *InteractiveReader) AllowBlank(allow bool) { ir.blanksAllowed = allow }

// Close implements SentenceReader.
func (ir *InteractiveReader) Close() error { return ir.rl.Close() }

// SetPrompt updates the prompt shown before each read.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt.
func (ir *InteractiveReader) GetPrompt() string { return ir.prompt }
