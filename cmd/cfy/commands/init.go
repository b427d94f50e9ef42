package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/paths"
)

var (
	initForce  bool
	initColors bool
	initFormat string
	initLogDir string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().BoolVar(&initColors, "colors", false, "Enable coloured event output")
	initCmd.Flags().StringVar(&initFormat, "format", "yaml", "Configuration file format: yaml, toml")
	initCmd.Flags().StringVar(&initLogDir, "log-dir", "", "Directory for the CLI log file (default: .cloudify/logs)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a cfy project in the working directory",
	Long: `Create .cloudify/config.yaml in the working directory.

The file carries a logging section that points the CLI log at
.cloudify/logs/cli.log and sets the main and REST client loggers to INFO.
Edit the loggers map to change levels; names are matched exactly and
levels are DEBUG, INFO, WARNING, ERROR or CRITICAL.`,
	Example: `  # Initialize with defaults
  cfy init

  # Initialize with coloured events and a TOML file
  cfy init --colors --format toml

  # Replace an existing configuration
  cfy init --force

  See Also: cfy config, cfy loggers`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	ext, err := initExtension(initFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --format yaml or --format toml")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting working directory")
	}
	initDir := filepath.Join(workDir, paths.InitDirName)

	out := cmd.OutOrStdout()
	if existing, ok := existingConfig(initDir); ok && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", existing)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	logDir := initLogDir
	if logDir == "" {
		logDir = filepath.Join(initDir, "logs")
	}
	logFile, err := filepath.Abs(filepath.Join(logDir, paths.LogFileName))
	if err != nil {
		return errors.Wrap(err, "resolving log file path")
	}

	path := filepath.Join(initDir, "config"+ext)
	if err := config.WriteDocument(path, config.NewDocument(logFile, initColors)); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+initDir)
	}

	// A forced init in another format must not leave the old file shadowing
	// the new one.
	for _, name := range paths.ConfigFileNames() {
		if other := filepath.Join(initDir, name); other != path {
			_ = os.Remove(other)
		}
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintf(out, "Logs will be written to %s\n", logFile)
	return nil
}

func initExtension(format string) (string, error) {
	switch format {
	case "yaml", "yml", "":
		return ".yaml", nil
	case "toml":
		return ".toml", nil
	default:
		return "", errors.Newf("unknown format %q", format)
	}
}

func existingConfig(initDir string) (string, bool) {
	for _, name := range paths.ConfigFileNames() {
		p := filepath.Join(initDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
