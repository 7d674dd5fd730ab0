package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // predicates valid / predicate matched
	ExitFailure      = 1 // invalid predicates or non-matching predicate
	ExitCommandError = 2 // command error (bad flags, unreadable files)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error. A nil error is
// success; errors without an explicit code are command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter renders command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// JSON reports whether the formatter is in JSON mode.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Emit writes data as a single indented JSON document. Only used in JSON
// mode; text rendering is done by each command.
func (f *OutputFormatter) Emit(data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	// Predicates are full of < and >; HTML escaping would mangle them.
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// Printf writes formatted text output.
func (f *OutputFormatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.Writer, format, args...)
}
