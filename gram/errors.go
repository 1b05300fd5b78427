package gram

import (
	"fmt"

	"github.com/dzonerzy/go-gram/internal/fuzzy"
)

// ErrorType categorizes parse failures. Help requests travel through the
// same channel so callers handle one error value uniformly.
type ErrorType string

const (
	ErrUnknownSwitch      ErrorType = "unknown_switch"
	ErrUnexpectedArgument ErrorType = "unexpected_argument"
	ErrMissingValue       ErrorType = "missing_value"
	ErrDuplicateSwitch    ErrorType = "duplicate_switch"
	ErrMissingRequired    ErrorType = "missing_required"
	ErrTypeConversion     ErrorType = "type_conversion"
	ErrHelpRequested      ErrorType = "help_requested"
)

// suggestionDistance is the maximum edit distance for "did you mean".
const suggestionDistance = 2

// ParseError is the single error value produced by matching. Exactly one
// of Switch/Positional is set when a specific slot is at fault.
type ParseError struct {
	Type       ErrorType
	Message    string
	Switch     string // offending switch in display form (--name)
	Positional string // offending positional name
	Raw        string // offending raw argument text
	Kind       Kind   // target kind for conversion failures
	Suggestion string // nearest-match hint, when one exists
	Help       string // rendered help text for help requests
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (did you mean '" + e.Suggestion + "'?)"
	}
	return e.Message
}

// IsHelp reports whether the error represents a help request rather than
// a genuine parse failure.
func (e *ParseError) IsHelp() bool { return e.Type == ErrHelpRequested }

// ExitCode returns the conventional process exit code: 0 for a help
// request, 2 for any parse failure.
func (e *ParseError) ExitCode() int {
	if e.IsHelp() {
		return 0
	}
	return 2
}

func newUnknownSwitchError(raw string, visible []*Switch) *ParseError {
	names := make([]string, 0, len(visible))
	for _, sw := range visible {
		names = append(names, sw.display())
	}
	return &ParseError{
		Type:       ErrUnknownSwitch,
		Message:    "unknown switch: " + raw,
		Switch:     raw,
		Raw:        raw,
		Suggestion: fuzzy.FindBestSwitch(raw, names, suggestionDistance),
	}
}

func newUnexpectedArgumentError(raw string, commands []*Command) *ParseError {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.name)
		names = append(names, cmd.aliases...)
	}
	return &ParseError{
		Type:       ErrUnexpectedArgument,
		Message:    "unexpected argument: " + raw,
		Raw:        raw,
		Suggestion: fuzzy.FindBestCommand(raw, names, suggestionDistance),
	}
}

func newExcessValueError(sw *Switch, raw string) *ParseError {
	return &ParseError{
		Type:    ErrUnexpectedArgument,
		Message: fmt.Sprintf("switch %s does not take a value", sw.display()),
		Switch:  sw.display(),
		Raw:     raw,
	}
}

func newMissingValueError(sw *Switch) *ParseError {
	return &ParseError{
		Type:    ErrMissingValue,
		Message: fmt.Sprintf("switch %s requires a value <%s>", sw.display(), sw.ValueName),
		Switch:  sw.display(),
	}
}

func newDuplicateSwitchError(sw *Switch) *ParseError {
	return &ParseError{
		Type:    ErrDuplicateSwitch,
		Message: fmt.Sprintf("switch %s may be given at most once", sw.display()),
		Switch:  sw.display(),
	}
}

func newMissingRequiredSwitchError(sw *Switch) *ParseError {
	return &ParseError{
		Type:    ErrMissingRequired,
		Message: fmt.Sprintf("required switch %s is missing", sw.display()),
		Switch:  sw.display(),
	}
}

func newMissingRequiredPositionalError(p *Positional) *ParseError {
	return &ParseError{
		Type:       ErrMissingRequired,
		Message:    fmt.Sprintf("required argument <%s> is missing", p.Name),
		Positional: p.Name,
	}
}

func newMissingSubcommandError(cmd *Command) *ParseError {
	return &ParseError{
		Type:    ErrMissingRequired,
		Message: fmt.Sprintf("command '%s' requires a subcommand", cmd.name),
	}
}

func newSwitchConversionError(sw *Switch, raw string, cause error) *ParseError {
	return &ParseError{
		Type:    ErrTypeConversion,
		Message: fmt.Sprintf("invalid value %q for switch %s: %v (expected %s)", raw, sw.display(), cause, sw.Kind),
		Switch:  sw.display(),
		Raw:     raw,
		Kind:    sw.Kind,
	}
}

func newPositionalConversionError(p *Positional, raw string, cause error) *ParseError {
	return &ParseError{
		Type:       ErrTypeConversion,
		Message:    fmt.Sprintf("invalid value %q for argument <%s>: %v (expected %s)", raw, p.Name, cause, p.Kind),
		Positional: p.Name,
		Raw:        raw,
		Kind:       p.Kind,
	}
}

func newHelpError(help string) *ParseError {
	return &ParseError{
		Type:    ErrHelpRequested,
		Message: "help requested",
		Help:    help,
	}
}
