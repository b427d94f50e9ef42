package commands

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runCLI executes the root command with args in a fresh working directory
// state and returns what it wrote to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	verbosity, quiet, configFlag = 0, false, ""
	initForce, initColors, initFormat, initLogDir = false, false, "yaml", ""
	loggersJSON = false
	doctorJSON, doctorFix = false, false
	eventsInteractive = false
	_ = genDocCmd.Flags().Set("dir", "")
	viper.Reset()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	// Cobra keeps a subcommand's context from an earlier run unless it is
	// reset, and the previous test's context is already cancelled.
	ctx := t.Context()
	setContext(rootCmd, ctx)

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setContext(sub, ctx)
	}
}

// setupWorkspace moves the test into an empty directory, points the
// default log file into it and isolates global state the CLI mutates.
func setupWorkspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CFY_LOG_FILE", filepath.Join(dir, "state", "cli.log"))
	t.Setenv("CFY_COLORS", "")
	os.Unsetenv("CFY_COLORS")

	origNoColor := color.NoColor
	color.NoColor = true
	flags, prefix, out := log.Flags(), log.Prefix(), log.Writer()
	t.Cleanup(func() {
		color.NoColor = origNoColor
		log.SetFlags(flags)
		log.SetPrefix(prefix)
		log.SetOutput(out)
	})
	return dir
}

func writeEvents(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "events.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	initDir := filepath.Join(dir, ".cloudify")
	if err := os.MkdirAll(initDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(initDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
