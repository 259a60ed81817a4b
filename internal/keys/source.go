// Package keys turns the raw byte stream of a terminal into key events.
//
// Escape sequences are parsed by charmbracelet/x/input. Its key presses are
// translated into the bubbletea vocabulary (tea.KeyMsg) the shell matches on;
// focus changes, mouse reports, unknown sequences and stray bytes are dropped.
package keys

import (
	"errors"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/input"

	"github.com/private-landing/rawsh/internal/terminal"
)

// DefaultPollInterval is the wait budget of a single poll in NextKey.
const DefaultPollInterval = 500 * time.Millisecond

var errTimeout = errors.New("keys: poll timeout")

// Source reads key events from a terminal input stream.
//
// A background goroutine parses input into events and hands them over a
// channel; NextKey consumes them on the caller's goroutine.
type Source struct {
	rd        *input.Reader
	events    chan input.Event
	readErr   chan error
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// NewSource starts reading from in. termType is the value of $TERM and may
// be empty. Close must be called to stop the reader.
func NewSource(in io.Reader, termType string) (*Source, error) {
	rd, err := input.NewReader(in, termType, 0)
	if err != nil {
		return nil, &terminal.Error{Op: "open input", Err: err}
	}
	s := &Source{
		rd:      rd,
		events:  make(chan input.Event, 64),
		readErr: make(chan error, 1),
		done:    make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

func (s *Source) pump() {
	for {
		evs, err := s.rd.ReadEvents()
		for _, ev := range evs {
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
		if err != nil {
			s.readErr <- err
			return
		}
	}
}

// NextKey blocks until a key is pressed. The input is polled in slices of
// poll; non-key events are discarded and polling continues. The only way out
// other than a key is a read failure, which is returned as *terminal.Error.
func (s *Source) NextKey(poll time.Duration) (tea.KeyMsg, error) {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	for {
		ev, err := s.next(poll)
		if errors.Is(err, errTimeout) {
			continue
		}
		if err != nil {
			return tea.KeyMsg{}, &terminal.Error{Op: "read key", Err: err}
		}
		if k, ok := keyMsg(ev); ok {
			return k, nil
		}
	}
}

// Close stops the background reader. It is safe to call more than once.
func (s *Source) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.rd.Cancel()
		err = s.rd.Close()
	})
	return err
}

// next returns the next parsed event, waiting at most timeout. Events parsed
// before a failure are still delivered; after that the failure is sticky.
func (s *Source) next(timeout time.Duration) (input.Event, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	default:
	}
	if s.err != nil {
		return nil, s.err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-s.events:
		return ev, nil
	case err := <-s.readErr:
		s.err = err
		select {
		case ev := <-s.events:
			return ev, nil
		default:
			return nil, err
		}
	case <-timer.C:
		return nil, errTimeout
	}
}
