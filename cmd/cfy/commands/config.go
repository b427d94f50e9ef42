package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/editor"
	"github.com/thoreinstein/cfy/internal/errors"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect cfy configuration",
	Long: `Inspect the client configuration resolved from .cloudify/config.yaml,
CFY_* environment variables and built-in defaults.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  cfy config

  # Get a specific value
  cfy config get colors

See Also: cfy init, cfy loggers`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Nested keys use dot notation, for example logging.filename.`,
	Example: `  # Get the colors setting
  cfy config get colors

  # Get the configured log file
  cfy config get logging.filename

See Also: cfy config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  cfy config list

See Also: cfy config get`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Long: `Print the configuration file cfy reads. The path is printed even when
the file does not exist yet; in that case the command fails.`,
	Args: cobra.NoArgs,
	RunE: runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in your editor",
	Long: `Open the configuration file in $EDITOR (then $VISUAL, nano, vi) and check
its logging section once the editor exits. edit works on a broken file.`,
	Example: `  # Edit with the default editor
  cfy config edit

  # Use a specific editor once
  EDITOR="code --wait" cfy config edit

See Also: cfy doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(out, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case map[string]any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshaling value")
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintln(out, viper.GetString(key))
	}
	return nil
}

// configListing is the output of config list.
type configListing struct {
	ConfigFile  string                 `yaml:"config_file"`
	Initialized bool                   `yaml:"initialized"`
	Colors      bool                   `yaml:"colors"`
	LogFile     string                 `yaml:"log_file"`
	Logging     *config.LoggingSection `yaml:"logging,omitempty"`
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	st, err := stateFrom(cmd)
	if err != nil {
		return err
	}

	listing := configListing{
		ConfigFile:  st.ConfigurationPath(),
		Initialized: st.IsInitialized(),
		Colors:      st.UseColors(),
		LogFile:     st.DefaultLogFile(),
	}
	// Logger names contain dots, so the section is read directly rather
	// than through Viper's key paths.
	if st.IsInitialized() {
		sec, err := config.LoadLoggingSection(st.ConfigurationPath())
		if err != nil {
			return err
		}
		listing.Logging = sec
	}

	data, err := yaml.Marshal(listing)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	st, err := stateFrom(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), st.ConfigurationPath())
	if !st.IsInitialized() {
		return errors.NewUserError(errors.ErrNotInitialized, "Run: cfy init")
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
	}

	path, ok := config.Locate(workDir, configFlag)
	if !ok {
		if configFlag != "" {
			return errors.Classify(errors.Wrapf(errors.ErrNotFound, "config file %s", configFlag), configFlag)
		}
		return errors.NewUserError(errors.ErrNotInitialized, "Run: cfy init")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Location: %s\n", path)
	err = editor.Open(cmd.Context(), path, editor.Streams{
		Stdin:  cmd.InOrStdin(),
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set EDITOR to an installed editor")
	}

	if _, err := config.LoadLoggingSection(path); err != nil {
		return errors.Classify(err, path)
	}
	fmt.Fprintln(out, "Logging section is valid")
	return nil
}
