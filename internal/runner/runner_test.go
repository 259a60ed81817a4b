package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExecuteCapturesStdout(t *testing.T) {
	r := New("sh", "-c")
	res, err := r.Execute(context.Background(), "printf 'a.txt\\nb.txt\\n'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "a.txt\nb.txt\n" {
		t.Fatalf("expected stdout 'a.txt\\nb.txt\\n', got %q", res.Stdout)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", res.ExitCode)
	}
}

func TestExecuteNonZeroExitIsNotAnError(t *testing.T) {
	r := New("sh", "-c")
	res, err := r.Execute(context.Background(), "echo partial; echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if res.Stdout != "partial\n" {
		t.Fatalf("expected stdout 'partial\\n', got %q", res.Stdout)
	}
	if res.Stderr != "oops\n" {
		t.Fatalf("expected stderr 'oops\\n', got %q", res.Stderr)
	}
}

func TestExecuteHasNoStdin(t *testing.T) {
	r := New("sh", "-c")
	res, err := r.Execute(context.Background(), "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "" {
		t.Fatalf("expected no output, got %q", res.Stdout)
	}
}

func TestExecuteMissingInterpreter(t *testing.T) {
	r := New("/nonexistent/interpreter", "-c")
	_, err := r.Execute(context.Background(), "ls")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %v", err)
	}
	if execErr.Line != "ls" {
		t.Fatalf("expected line 'ls', got %q", execErr.Line)
	}
}

func TestExecuteInvalidUTF8(t *testing.T) {
	r := New("sh", "-c")
	_, err := r.Execute(context.Background(), "printf '\\377\\376'")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestResultLines(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a.txt\nb.txt\n", []string{"a.txt", "b.txt"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Result{Stdout: tt.stdout}.Lines()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Lines(%q) mismatch (-want +got):\n%s", tt.stdout, diff)
			}
		})
	}
}
