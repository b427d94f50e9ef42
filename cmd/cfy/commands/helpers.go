package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/logging"
)

// Colours for command output. fatih/color drops them when stdout is not a
// terminal or NO_COLOR is set.
var (
	headerColor = color.New(color.Bold)
	nameColor   = color.New(color.FgGreen)
	hintColor   = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed, color.Bold)
)

type stateKey struct{}

func withState(ctx context.Context, st *config.State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// stateFrom returns the client state loaded by the root command.
func stateFrom(cmd *cobra.Command) (*config.State, error) {
	if st, ok := cmd.Context().Value(stateKey{}).(*config.State); ok && st != nil {
		return st, nil
	}
	return nil, errors.New("client state not loaded")
}

// registryFrom returns the logging Registry configured by the root command.
func registryFrom(cmd *cobra.Command) (*logging.Registry, error) {
	if reg := logging.FromContext(cmd.Context()); reg != nil && reg.Main() != nil {
		return reg, nil
	}
	return nil, errors.New("logging not configured")
}

// PrintError writes err and its suggestion to w and returns the process
// exit code.
func PrintError(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitSuccess
	}

	code := errors.ExitUser
	msg := err
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		// A bare exit code has already been reported by the command.
		if exitErr.Err == nil {
			return code
		}
		msg = exitErr.Err
	}

	errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, msg)
	if exitErr != nil && exitErr.Suggestion != "" {
		hintColor.Fprintln(w, exitErr.Suggestion)
	}
	if hints := errors.FlattenHints(err); hints != "" {
		hintColor.Fprintln(w, hints)
	}
	return code
}
