package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"RAWSH_SHELL":         "bash",
		"RAWSH_SHELL_FLAG":    "-lc",
		"RAWSH_PROMPT":        "$ ",
		"RAWSH_POLL_INTERVAL": "250ms",
		"RAWSH_STRICT_KEYS":   "true",
		"RAWSH_LOG":           "debug",
		"RAWSH_LOG_FILE":      "/tmp/rawsh.log",
		"NO_COLOR":            "1",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Interpreter:  "bash",
		Flag:         "-lc",
		Prompt:       "$ ",
		PollInterval: 250 * time.Millisecond,
		StrictKeys:   true,
		LogLevel:     "debug",
		LogFile:      "/tmp/rawsh.log",
		NoColor:      true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
	}{
		{"unparsable interval", map[string]string{"RAWSH_POLL_INTERVAL": "soon"}, "RAWSH_POLL_INTERVAL"},
		{"zero interval", map[string]string{"RAWSH_POLL_INTERVAL": "0s"}, "must be positive"},
		{"negative interval", map[string]string{"RAWSH_POLL_INTERVAL": "-1s"}, "must be positive"},
		{"bad bool", map[string]string{"RAWSH_STRICT_KEYS": "maybe"}, "RAWSH_STRICT_KEYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.vars))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
