// Package executil runs the external commands bound to document
// keybinding actions, with a recording implementation for tests.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Keybinding commands can be arbitrarily chatty; their output only ever
// surfaces in a status-line error message, so it is capped.
const maxOutputLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs an external command on behalf of a keybinding action.
type Executor interface {
	// Run executes a command and returns its combined output, capped
	// at maxOutputLen bytes.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunDir is Run with the working directory set, normally to the
	// case directory.
	RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual shell commands.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.RunDir(ctx, "", cmd, args...)
}

// RunDir executes a command in a specific directory.
func (e *RealExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, max: maxOutputLen}
	c.Stdout = w
	c.Stderr = w
	if err := c.Run(); err != nil {
		return buf.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return buf.Bytes(), nil
}
