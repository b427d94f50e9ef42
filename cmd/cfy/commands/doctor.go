package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/doctor"
	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/logging"
)

var (
	doctorJSON bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"create missing log directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose logging configuration issues",
	Long: `Check the configuration file, the logger levels it names and the log
directories handlers write to. doctor runs without configuring logging, so it
works when the configuration file is broken.

Output modes:
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Diagnose the current project
  cfy doctor

  # Create missing log directories
  cfy doctor --fix

  See Also: cfy init, cfy config`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorJSON && (quiet || verbosity > 0) {
		return errors.NewUserError(errors.New("--json cannot be combined with -q or -v"),
			"Use --json on its own")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
	}

	config.Init()
	path, initialized := config.Locate(workDir, configFlag)
	if configFlag != "" && !initialized {
		return errors.Classify(errors.Wrapf(errors.ErrNotFound, "config file %s", configFlag), configFlag)
	}

	runner := doctor.NewRunner(logging.New(logging.Options{
		Level:  logging.LevelFromVerbosity(verbosity),
		Output: cmd.ErrOrStderr(),
	}))
	configCheck := doctor.NewConfigFileCheck(path, initialized)
	runner.AddCheck(configCheck)
	runner.AddCheck(doctor.NewLoggerLevelsCheck(configCheck))
	runner.AddCheck(doctor.NewLogPathCheck("default-log-dir", config.DefaultLogFile()))
	runner.AddCheck(doctor.NewConfiguredLogPathCheck(configCheck))

	report := runner.Run()
	if doctorFix {
		if fixes := runner.Fix(); len(fixes) > 0 {
			report = runner.Run()
			report.Fixes = fixes
		}
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// The report already explains the failures.
	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	switch {
	case quiet:
		return nil
	case doctorJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	default:
		outputDoctorText(w, report, verbosity > 0)
		return nil
	}
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport, showAll bool) {
	for _, fix := range report.Fixes {
		if fix.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", nameColor.Sprint("✓"), fix.Path, fix.Description)
		} else {
			fmt.Fprintf(w, "%s could not fix %s: %s\n", errorColor.Sprint("✗"), fix.Path, fix.Description)
		}
	}

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  %s %s\n", hintColor.Sprint("hint:"), result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return nameColor.Sprint("✓")
	case doctor.SeverityInfo:
		return hintColor.Sprint("ℹ")
	case doctor.SeverityWarning:
		return headerColor.Sprint("⚠")
	case doctor.SeverityError:
		return errorColor.Sprint("✗")
	default:
		return "?"
	}
}
