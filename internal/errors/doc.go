// Package errors provides error handling conventions for the cfy CLI.
//
// This package defines sentinel errors for the failure classes of logging
// configuration, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions. Wrapping helpers are thin
// aliases over github.com/cockroachdb/errors so callers need a single import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, cfyerrors.ErrUnknownLevel) {
//	    // the configuration file named a level we do not know
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, network, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It supports error unwrapping via [Unwrap] and [As]:
//
//	err := cfyerrors.NewUserError(cfyerrors.ErrConfigParse, "Check your config file")
//	var exitErr *cfyerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
