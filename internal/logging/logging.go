// Package logging builds the leveled logger shared by the shell's packages.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error" or "fatal").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "rawsh",
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}

// Open returns the log sink: the file at path (appended to) or, when path is
// empty, stderr. The returned close function is never nil.
func Open(path string) (io.Writer, func() error, error) {
	if path == "" {
		return Sink(os.Stderr), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

// Sink wraps a terminal so log lines written while it is in raw mode still
// start at column zero. Anything that is not a terminal is returned as is.
func Sink(f *os.File) io.Writer {
	if !isatty.IsTerminal(f.Fd()) {
		return f
	}
	return CRLFWriter{W: f}
}

// CRLFWriter rewrites bare line feeds as CRLF.
type CRLFWriter struct {
	W io.Writer
}

func (c CRLFWriter) Write(p []byte) (int, error) {
	out := bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	if _, err := c.W.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
