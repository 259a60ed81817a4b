package terminal

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("device gone")
}

func pipe(t *testing.T) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r
}

func TestEnterRawModeRejectsNonTerminal(t *testing.T) {
	term := New(pipe(t), &bytes.Buffer{})
	err := term.EnterRawMode()
	if !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
	var terr *Error
	if !errors.As(err, &terr) || terr.Op != "enter raw mode" {
		t.Fatalf("expected *Error with op 'enter raw mode', got %#v", err)
	}
	if term.Raw() {
		t.Fatal("terminal reports raw mode after failed setup")
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	term := New(pipe(t), &bytes.Buffer{})
	_ = term.EnterRawMode()
	for i := 0; i < 3; i++ {
		if err := term.Restore(); err != nil {
			t.Fatalf("Restore #%d: unexpected error: %v", i+1, err)
		}
	}
}

func TestRenderingPrimitives(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Terminal) error
		want string
	}{
		{"clear screen", (*Terminal).ClearScreen, "\x1b[2J\x1b[H"},
		{"clear line", (*Terminal).ClearLine, "\x1b[2K"},
		{"column zero", func(t *Terminal) error { return t.MoveToColumn(0) }, "\x1b[1G"},
		{"column five", func(t *Terminal) error { return t.MoveToColumn(5) }, "\x1b[6G"},
		{"negative column", func(t *Terminal) error { return t.MoveToColumn(-2) }, "\x1b[1G"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := New(pipe(t), &out)
			if err := tt.run(term); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := term.Flush(); err != nil {
				t.Fatalf("flush: %v", err)
			}
			if out.String() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestWritesAreBufferedUntilFlush(t *testing.T) {
	var out bytes.Buffer
	term := New(pipe(t), &out)
	if _, err := term.Write([]byte("> ls")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing before flush, got %q", out.String())
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "> ls" {
		t.Fatalf("expected '> ls', got %q", out.String())
	}
}

func TestFlushFailureIsTerminalError(t *testing.T) {
	term := New(pipe(t), failingWriter{})
	term.Write([]byte("x"))
	err := term.Flush()
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Op != "flush" {
		t.Fatalf("expected op 'flush', got %q", terr.Op)
	}
}

func TestClearScreenFailureIsTerminalError(t *testing.T) {
	term := New(pipe(t), failingWriter{})
	err := term.ClearScreen()
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}
