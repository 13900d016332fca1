// Package converter runs the external IfcConvert tool that turns a
// single-element IFC file into a renderable mesh.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout is wrapped by ConversionError when the invocation exceeded
// its deadline.
var ErrTimeout = errors.New("converter timed out")

// waitDelay bounds how long Wait blocks on output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

// ConversionError describes a failed converter run.
type ConversionError struct {
	Source   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s: exit code %d", e.Source, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IfcConvert invokes the IfcOpenShell command line converter. The output
// format follows the destination extension (.glb, .obj).
type IfcConvert struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

// NewIfcConvert returns a converter for the binary at path. Extra args are
// appended after the fixed ones.
func NewIfcConvert(path string, args []string, timeout time.Duration) *IfcConvert {
	if path == "" {
		path = "IfcConvert"
	}
	return &IfcConvert{Path: path, Args: args, Timeout: timeout}
}

// Convert runs `IfcConvert src dst --use-element-guids [args...]`.
func (c *IfcConvert) Convert(ctx context.Context, src, dst string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append([]string{src, dst, "--use-element-guids"}, c.Args...)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return nil
	}

	convErr := &ConversionError{Source: src, ExitCode: -1, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		convErr.ExitCode = exitErr.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		convErr.Err = ErrTimeout
	}
	return convErr
}
