package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrConfigParse indicates a configuration document could not be decoded
	// or lacks a required section.
	ErrConfigParse = crdb.New("invalid logging configuration")

	// ErrUnknownLevel indicates a severity name that is not one of the
	// standard level names.
	ErrUnknownLevel = crdb.New("unknown log level")

	// ErrFilesystem indicates a log directory or file could not be created.
	ErrFilesystem = crdb.New("log filesystem error")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrNotInitialized indicates the working directory has no client
	// configuration yet.
	ErrNotInitialized = crdb.New("not initialized")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: cfy init --force",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Classify converts a logging configuration failure into an ExitError.
// Parse and level errors are the user's to fix; filesystem errors are
// reported as system errors. Errors already carrying an exit code are
// returned unchanged.
func Classify(err error, configPath string) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}

	switch {
	case Is(err, ErrConfigParse), Is(err, ErrUnknownLevel):
		suggestion := "Check the logging section of your configuration file"
		if configPath != "" {
			suggestion = "Check the logging section of " + configPath
		}
		return NewUserError(err, suggestion)
	case Is(err, ErrNotFound):
		return NewUserError(err, "Check the path given to --config")
	case Is(err, ErrNotInitialized):
		return NewUserError(err, "Run: cfy init")
	case Is(err, ErrFilesystem):
		return NewSystemError(err, "Check permissions on the log directory")
	default:
		return NewExitError(err, ExitSystem)
	}
}
