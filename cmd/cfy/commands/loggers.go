package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cfy/internal/logging"
)

var loggersJSON bool

func init() {
	loggersCmd.Flags().BoolVar(&loggersJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(loggersCmd)
}

var loggersCmd = &cobra.Command{
	Use:   "loggers",
	Short: "List configured loggers and their levels",
	Long: `List every logger configured from the built-in defaults and the
logging section of the configuration file, with its effective level.`,
	Example: `  # Show loggers
  cfy loggers

  # Machine-readable output
  cfy loggers --json

  See Also: cfy init, cfy config`,
	Args: cobra.NoArgs,
	RunE: runLoggers,
}

// loggerInfo represents a logger in JSON output format.
type loggerInfo struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func runLoggers(cmd *cobra.Command, _ []string) error {
	reg, err := registryFrom(cmd)
	if err != nil {
		return err
	}

	infos := make([]loggerInfo, 0, len(reg.Registered()))
	for _, name := range reg.Registered() {
		lvl, _ := reg.Level(name)
		infos = append(infos, loggerInfo{Name: name, Level: logging.LevelName(lvl)})
	}

	if loggersJSON {
		return outputLoggersJSON(cmd.OutOrStdout(), infos)
	}
	return outputLoggersTabular(cmd.OutOrStdout(), infos)
}

func outputLoggersJSON(w io.Writer, infos []loggerInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func outputLoggersTabular(w io.Writer, infos []loggerInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", headerColor.Sprint("NAME"), headerColor.Sprint("LEVEL"))
	for _, l := range infos {
		fmt.Fprintf(tw, "%s\t%s\n", nameColor.Sprint(l.Name), l.Level)
	}
	return tw.Flush()
}
