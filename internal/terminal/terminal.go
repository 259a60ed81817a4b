// Package terminal wraps the controlling terminal: raw mode and the few ANSI
// rendering primitives the shell needs.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on something that is
// not a terminal device.
var ErrNotTerminal = errors.New("not a terminal")

// Error is a failure of the terminal device or of a rendering primitive.
// It is always fatal to the session.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File is the subset of *os.File needed to switch modes.
type File interface {
	Fd() uintptr
}

// Terminal renders to out and controls the mode of in. Writes are buffered
// until Flush.
type Terminal struct {
	in    File
	w     *bufio.Writer
	saved *term.State
}

// New returns a Terminal reading its mode from in and rendering to out.
func New(in File, out io.Writer) *Terminal {
	return &Terminal{in: in, w: bufio.NewWriter(out)}
}

// EnterRawMode disables line buffering and local echo.
func (t *Terminal) EnterRawMode() error {
	if t.saved != nil {
		return nil
	}
	fd := t.in.Fd()
	if !term.IsTerminal(fd) {
		return &Error{Op: "enter raw mode", Err: ErrNotTerminal}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return &Error{Op: "enter raw mode", Err: err}
	}
	t.saved = state
	return nil
}

// Restore returns the terminal to the mode it had before EnterRawMode.
// Calling it again, or without a prior EnterRawMode, does nothing.
func (t *Terminal) Restore() error {
	if t.saved == nil {
		return nil
	}
	state := t.saved
	t.saved = nil
	if err := term.Restore(t.in.Fd(), state); err != nil {
		return &Error{Op: "restore mode", Err: err}
	}
	return nil
}

// Raw reports whether raw mode is active.
func (t *Terminal) Raw() bool {
	return t.saved != nil
}

// ClearScreen erases the display and homes the cursor.
func (t *Terminal) ClearScreen() error {
	if err := t.emit("clear screen", ansi.EraseEntireScreen+ansi.CursorHomePosition); err != nil {
		return err
	}
	return t.Flush()
}

// ClearLine erases the line the cursor is on. The cursor does not move.
func (t *Terminal) ClearLine() error {
	return t.emit("clear line", ansi.EraseEntireLine)
}

// MoveToColumn moves the cursor to the zero-based column n of the current line.
func (t *Terminal) MoveToColumn(n int) error {
	if n < 0 {
		n = 0
	}
	return t.emit("move cursor", ansi.CursorHorizontalAbsolute(n+1))
}

func (t *Terminal) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		return n, &Error{Op: "write", Err: err}
	}
	return n, nil
}

// Flush sends everything written so far to the device.
func (t *Terminal) Flush() error {
	if err := t.w.Flush(); err != nil {
		return &Error{Op: "flush", Err: err}
	}
	return nil
}

func (t *Terminal) emit(op, seq string) error {
	if _, err := t.w.WriteString(seq); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}
