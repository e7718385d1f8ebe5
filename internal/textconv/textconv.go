// Package textconv wraps the external document-to-text conversion utility.
// Conversion runs one external process per document with a fixed timeout;
// a failed or timed-out conversion is a per-document condition the batch
// recovers from, never a batch abort.
package textconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const DefaultTimeout = 10 * time.Second

// ErrTimeout marks a conversion that exceeded the converter timeout.
var ErrTimeout = errors.New("conversion timed out")

// Converter invokes an external binary that prints a document as UTF-8
// plain text on stdout. The default is macOS textutil; the command is
// configurable so tests and other platforms can substitute their own.
type Converter struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// New returns a Converter for the textutil utility.
func New(timeout time.Duration) *Converter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{
		Command: "textutil",
		Args:    []string{"-convert", "txt", "-stdout"},
		Timeout: timeout,
	}
}

// Convert runs the converter on one document and returns its text output.
// Returns ErrTimeout (wrapped) when the process exceeds the timeout, and a
// descriptive error for a non-zero exit.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w after %s: %s", ErrTimeout, c.Timeout, path)
	}
	if err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return "", fmt.Errorf("convert %s: %v: %s", path, err, msg)
		}
		return "", fmt.Errorf("convert %s: %w", path, err)
	}

	return stdout.String(), nil
}
