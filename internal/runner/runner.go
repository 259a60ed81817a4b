// Package runner executes submitted lines through a system interpreter and
// captures what they print.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// ExecError is returned when the interpreter could not be started.
type ExecError struct {
	Line string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Line, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a command writes something other than UTF-8
// text to stdout.
type DecodeError struct {
	Line string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("output of %q is not valid UTF-8", e.Line)
}

// Result is the captured outcome of one command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Lines splits stdout into lines. A trailing line terminator does not
// produce an empty last line, and CRLF endings lose their CR.
func (r Result) Lines() []string {
	if r.Stdout == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(r.Stdout, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Runner passes lines verbatim to Interpreter, as in `sh -c <line>`.
type Runner struct {
	Interpreter string
	Flag        string
}

// New returns a Runner for interpreter, invoked with flag before the line.
func New(interpreter, flag string) *Runner {
	return &Runner{Interpreter: interpreter, Flag: flag}
}

// Execute runs line and waits for it to finish. A non-zero exit status is
// reported in the Result, not as an error. The command gets no stdin.
func (r *Runner) Execute(ctx context.Context, line string) (Result, error) {
	cmd := exec.CommandContext(ctx, r.Interpreter, r.Flag, line)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, &ExecError{Line: line, Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
	}

	if !utf8.Valid(stdout.Bytes()) {
		return Result{}, &DecodeError{Line: line}
	}
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res, nil
}
