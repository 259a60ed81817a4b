// Package shell is the interactive line editor: it turns key events into an
// input line, redraws the line after every change and hands submitted lines
// to a command runner.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/private-landing/rawsh/internal/runner"
	"github.com/private-landing/rawsh/internal/session"
	"github.com/private-landing/rawsh/internal/ui"
)

// Surface is the terminal the shell renders to.
type Surface interface {
	io.Writer
	EnterRawMode() error
	Restore() error
	ClearScreen() error
	ClearLine() error
	MoveToColumn(n int) error
	Flush() error
}

// KeySource blocks until the next key press, polling at the given interval.
type KeySource interface {
	NextKey(poll time.Duration) (tea.KeyMsg, error)
}

// Executor runs a submitted line.
type Executor interface {
	Execute(ctx context.Context, line string) (runner.Result, error)
}

// State is the state of the editor after a key has been handled.
type State int

const (
	Prompting State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Terminated:
		return "terminated"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// UnhandledKeyError reports a key outside the editor's transition table. It
// is only returned in strict mode.
type UnhandledKeyError struct {
	Key string
}

func (e *UnhandledKeyError) Error() string {
	return fmt.Sprintf("unhandled key %q", e.Key)
}

// Options tune a Shell. The zero value is usable.
type Options struct {
	Prompt       string
	PollInterval time.Duration
	// StrictKeys makes unmodeled keys end the session instead of being
	// ignored.
	StrictKeys bool
	Logger     *log.Logger
}

// Shell owns one session. It is not safe for concurrent use; everything
// runs on the goroutine that calls Run.
type Shell struct {
	term  Surface
	keys  KeySource
	exec  Executor
	opts  Options
	log   *log.Logger
	state session.State
	raw   bool
}

// New returns a Shell rendering to term, reading keys from keys and running
// submitted lines with exec.
func New(term Surface, keys KeySource, exec Executor, opts Options) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard)
	}
	return &Shell{term: term, keys: keys, exec: exec, opts: opts, log: lg}
}

// Session exposes the current session state.
func (s *Shell) Session() *session.State {
	return &s.state
}

// Run enters raw mode, draws the prompt and handles keys until an exit key
// is pressed or an error occurs. The terminal is restored on every way out,
// panics included, and cleared if raw mode was entered. For errors a
// diagnostic is printed before the terminal mode is restored.
func (s *Shell) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("shell: panic: %v", r)
		}
		s.teardown(err)
	}()

	if err := s.term.EnterRawMode(); err != nil {
		return err
	}
	s.raw = true
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		k, err := s.keys.NextKey(s.opts.PollInterval)
		if err != nil {
			return err
		}
		st, err := s.Handle(ctx, k)
		if err != nil {
			return err
		}
		if st == Terminated {
			return nil
		}
	}
}

// teardown never fails: the terminal must be restored whatever state it is in.
// The screen is only cleared if the session got as far as raw mode.
func (s *Shell) teardown(cause error) {
	if s.raw {
		if err := s.term.ClearScreen(); err != nil {
			s.log.Error("clear screen", "err", err)
		}
	}
	if cause != nil {
		fmt.Fprintf(s.term, "%s\r\n", ui.Diagnostic(cause))
		if err := s.term.Flush(); err != nil {
			s.log.Error("flush diagnostic", "err", err)
		}
	}
	if err := s.term.Restore(); err != nil {
		s.log.Error("restore terminal", "err", err)
	}
}

// Handle applies one key to the session and redraws what changed.
func (s *Shell) Handle(ctx context.Context, k tea.KeyMsg) (State, error) {
	switch k.String() {
	case "esc", "alt+esc", "ctrl+q":
		return Terminated, nil
	case "enter":
		return Prompting, s.submit(ctx)
	case "ctrl+h":
		return Prompting, s.showHistory()
	case "backspace":
		s.state.Input.Backspace()
		return Prompting, s.redraw()
	}

	if printable(k) {
		s.state.Input.Append(k.Runes)
		return Prompting, s.redraw()
	}

	s.log.Warn("unimplemented key", "key", k.String(), "type", int(k.Type))
	if s.opts.StrictKeys {
		return Prompting, &UnhandledKeyError{Key: k.String()}
	}
	return Prompting, nil
}

// printable reports whether k types text. Shift is folded into the rune by
// the terminal, so only Alt disqualifies a rune key.
func printable(k tea.KeyMsg) bool {
	if k.Alt || k.Paste {
		return false
	}
	return (k.Type == tea.KeyRunes || k.Type == tea.KeySpace) && len(k.Runes) > 0
}

func (s *Shell) submit(ctx context.Context) error {
	if _, err := io.WriteString(s.term, "\r\n"); err != nil {
		return err
	}
	if s.state.Input.Empty() {
		return s.prompt()
	}

	line := s.state.Input.Value
	s.log.Info("running", "cmd", line)
	res, err := s.exec.Execute(ctx, line)
	if err != nil {
		return err
	}
	lines := res.Lines()
	s.log.Info("output", "cmd", line, "lines", len(lines), "exit", res.ExitCode)
	if res.Stderr != "" {
		s.log.Debug("stderr", "cmd", line, "text", res.Stderr)
	}

	for _, l := range lines {
		if _, err := io.WriteString(s.term, l+"\r\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(s.term, "\r\n"); err != nil {
		return err
	}

	s.state.History.Append(line)
	s.state.Input.Clear()
	return s.prompt()
}

func (s *Shell) showHistory() error {
	h := &s.state.History
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "history cursor: %d\n", h.Cursor())
	if h.Len() == 0 {
		b.WriteString(ui.DimStyle.Render("(empty)"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, h.Len())
		for i, line := range h.Entries() {
			rows = append(rows, []string{strconv.Itoa(i + 1), line})
		}
		b.WriteString(ui.RenderTable([]ui.Column{
			{Header: "#", Width: 4},
			{Header: "Command"},
		}, rows))
	}
	out := strings.ReplaceAll(b.String(), "\n", "\r\n")
	if _, err := io.WriteString(s.term, out); err != nil {
		return err
	}
	return s.redraw()
}

// prompt draws a fresh prompt at the cursor.
func (s *Shell) prompt() error {
	if _, err := io.WriteString(s.term, s.renderPrompt()); err != nil {
		return err
	}
	return s.term.Flush()
}

// redraw repaints the whole current line from column 0.
func (s *Shell) redraw() error {
	if err := s.term.ClearLine(); err != nil {
		return err
	}
	if err := s.term.MoveToColumn(0); err != nil {
		return err
	}
	if _, err := io.WriteString(s.term, s.renderPrompt()+s.state.Input.Value); err != nil {
		return err
	}
	return s.term.Flush()
}

func (s *Shell) renderPrompt() string {
	return ui.PromptStyle.Render(s.opts.Prompt)
}
