package gram

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// osExit is swapped out by tests.
var osExit = os.Exit

// ExitCode maps an error from Parse to the conventional process exit
// code: 0 for nil or a help request, 2 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.ExitCode()
	}
	return 2
}

// Exit is the convenience path for main functions: it prints the error
// (help text to stdout, failures to stderr) and terminates the process
// with the conventional exit code. A nil error is a no-op so callers can
// write gram.Exit(err) unconditionally after a failed Parse. The core
// parser never calls this; it is a thin wrapper for process-facing code.
func Exit(err error) {
	if err == nil {
		return
	}
	osExit(fprintError(os.Stdout, os.Stderr, err))
}

func fprintError(stdout, stderr io.Writer, err error) int {
	var pe *ParseError
	if errors.As(err, &pe) && pe.IsHelp() {
		fmt.Fprintln(stdout, pe.Help)
		return 0
	}
	fmt.Fprintln(stderr, "error:", err.Error())
	return ExitCode(err)
}
