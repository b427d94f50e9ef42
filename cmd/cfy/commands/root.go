// Package commands implements the CLI commands for cfy.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/cmd"
	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// configFlag holds the value of the --config flag.
var configFlag string

// skipLogging names commands that run before, or without, a logging
// configuration. init, doctor and config edit must work even when the
// existing file is broken.
var skipLogging = map[string]bool{
	"help":    true,
	"version": true,
	"gen-doc": true,
	"init":    true,
	"doctor":  true,
	"edit":    true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity (-v prints full events, -vv enables debug logs)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only print errors")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"configuration file (default: .cloudify/config.yaml found from the working directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("cfy version {{.Version}}\n")

	// Errors are printed by PrintError with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "cfy",
	Short: "Command-line client for Cloudify managers",
	Long: `cfy talks to a Cloudify manager and prints deployment events and logs.

Logging is configured from the logging section of .cloudify/config.yaml,
looked up from the working directory upwards. Until a project is
initialized, logs go to the default log file under the XDG state directory.`,
	Example: `  # Create .cloudify/config.yaml in the current directory
  cfy init

  # Print events saved from a deployment
  cfy events render events.json

  # Show the configured loggers
  cfy loggers

  See Also: cfy init, cfy config`,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: teardownLogging,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging loads the client state and runs the logging configurator.
// The resulting Registry and State are stored in the command context.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either -q or -v, not both")
	}
	if skipLogging[cmd.Name()] {
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
	}

	config.Init()
	state, err := config.Load(workDir, configFlag)
	if err != nil {
		return errors.Classify(err, configFlag)
	}

	reg := logging.NewRegistry(logging.RegistryOptions{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err := logging.NewConfigurator(state, reg).Configure(); err != nil {
		_ = reg.Close()
		return errors.Classify(err, state.ConfigurationPath())
	}
	applyVerbosity(reg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.NewContext(ctx, reg)
	cmd.SetContext(withState(ctx, state))

	reg.Main().Debug("logging configured",
		"config", state.ConfigurationPath(),
		"loggers", len(reg.Registered()))
	return nil
}

// applyVerbosity adjusts the main logger for -q and -v. Verbosity only ever
// lowers the configured level.
func applyVerbosity(reg *logging.Registry) {
	switch {
	case quiet:
		reg.SetLevel(logging.MainLoggerName, slog.LevelError)
	case verbosity > 0:
		want := logging.LevelFromVerbosity(verbosity)
		if current, _ := reg.Level(logging.MainLoggerName); want < current {
			reg.SetLevel(logging.MainLoggerName, want)
		}
	}
}

func teardownLogging(cmd *cobra.Command, _ []string) error {
	if reg := logging.FromContext(cmd.Context()); reg != nil {
		return errors.Wrap(reg.Close(), "closing log files")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.ExecuteContext(context.Background()), "executing root command")
}
