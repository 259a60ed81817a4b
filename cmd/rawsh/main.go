package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/private-landing/rawsh/internal/config"
	"github.com/private-landing/rawsh/internal/keys"
	"github.com/private-landing/rawsh/internal/logging"
	"github.com/private-landing/rawsh/internal/runner"
	"github.com/private-landing/rawsh/internal/shell"
	"github.com/private-landing/rawsh/internal/terminal"
	"github.com/private-landing/rawsh/internal/ui"
)

var version = "development"

type command int

const (
	cmdRun command = iota
	cmdHelp
	cmdVersion
)

var errUsage = errors.New("usage")

func parseArgs(args []string) (command, error) {
	cmd := cmdRun
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return cmdHelp, nil
		case "-v", "--version":
			cmd = cmdVersion
		default:
			return cmdRun, fmt.Errorf("%w: unknown option %s, see --help", errUsage, arg)
		}
	}
	return cmd, nil
}

func printUsage() {
	heading := ui.TitleStyle.Render
	label := ui.PromptStyle.Render
	dim := ui.DimStyle.Render

	fmt.Println(heading("rawsh") + dim(" - raw-mode command shell"))
	fmt.Println()
	fmt.Println(heading("Usage:"))
	fmt.Println("  rawsh [flags]")
	fmt.Println()
	fmt.Println("  Reads a command line key by key and runs it through $RAWSH_SHELL -c.")
	fmt.Println()
	fmt.Println(heading("Flags:"))
	fmt.Println("  " + label("-h, --help") + "       Show this help message")
	fmt.Println("  " + label("-v, --version") + "    Print the version")
	fmt.Println()
	fmt.Println(heading("Environment:"))
	fmt.Println("  " + label("RAWSH_SHELL") + "           Interpreter for submitted lines " + dim("(default sh)"))
	fmt.Println("  " + label("RAWSH_SHELL_FLAG") + "      Flag passed before the line " + dim("(default -c)"))
	fmt.Println("  " + label("RAWSH_PROMPT") + "          Prompt text " + dim("(default \"> \")"))
	fmt.Println("  " + label("RAWSH_POLL_INTERVAL") + "   Key poll interval " + dim("(default 500ms)"))
	fmt.Println("  " + label("RAWSH_STRICT_KEYS") + "     Exit on keys the editor does not handle")
	fmt.Println("  " + label("RAWSH_LOG") + "             Log level: debug, info, warn, error " + dim("(default error)"))
	fmt.Println("  " + label("RAWSH_LOG_FILE") + "        Append logs to this file instead of stderr")
	fmt.Println("  " + label("NO_COLOR") + "              Disable colors")
	fmt.Println()
	fmt.Println(heading("Keys:"))
	fmt.Println("  " + label("enter") + "             Run the line " + dim("(empty line: new prompt)"))
	fmt.Println("  " + label("backspace") + "         Delete the last character")
	fmt.Println("  " + label("ctrl+h") + "            Show the session history")
	fmt.Println("  " + label("esc, ctrl+q") + "       Quit")
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	switch cmd {
	case cmdHelp:
		printUsage()
		return
	case cmdVersion:
		fmt.Println(version)
		return
	}

	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		ui.DisableColor()
	}

	os.Exit(run(cfg))
}

func run(cfg config.Config) int {
	sink, closeLog, err := logging.Open(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	logger, err := logging.New(sink, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	src, err := keys.NewSource(os.Stdin, os.Getenv("TERM"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer src.Close()

	sh := shell.New(
		terminal.New(os.Stdin, os.Stdout),
		src,
		runner.New(cfg.Interpreter, cfg.Flag),
		shell.Options{
			Prompt:       cfg.Prompt,
			PollInterval: cfg.PollInterval,
			StrictKeys:   cfg.StrictKeys,
			Logger:       logger,
		},
	)
	if err := sh.Run(context.Background()); err != nil {
		// The shell has already printed the diagnostic.
		logger.Debug("session ended", "err", err)
		return 1
	}
	return 0
}
