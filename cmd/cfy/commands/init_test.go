package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/cfy/internal/config"
)

func TestInit_CreatesConfig(t *testing.T) {
	dir := setupWorkspace(t)

	stdout, _, err := runCLI(t, "", "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	path := filepath.Join(dir, ".cloudify", "config.yaml")
	if !strings.Contains(stdout, "Created "+path) {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	sec, err := config.LoadLoggingSection(path)
	if err != nil {
		t.Fatalf("reading created config: %v", err)
	}
	if want := filepath.Join(dir, ".cloudify", "logs", "cli.log"); sec.Filename != want {
		t.Errorf("filename = %q, want %q", sec.Filename, want)
	}
	for name, level := range config.DefaultLoggers {
		if sec.Loggers[name] != level {
			t.Errorf("logger %s = %q, want %q", name, sec.Loggers[name], level)
		}
	}

	// The next command picks the project up and registers its loggers.
	stdout, _, err = runCLI(t, "", "loggers")
	if err != nil {
		t.Fatalf("loggers failed: %v", err)
	}
	if !strings.Contains(stdout, "cloudify.rest_client.http") {
		t.Errorf("expected project loggers, got:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, ".cloudify", "logs")); err != nil {
		t.Errorf("project log directory not created: %v", err)
	}
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := setupWorkspace(t)
	path := writeConfig(t, dir, "colors: false\n")

	stdout, _, err := runCLI(t, "", "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "already exists") {
		t.Errorf("expected already-exists message, got:\n%s", stdout)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "colors: false\n" {
		t.Errorf("existing config was modified: %q", data)
	}
}

func TestInit_ForceTOML(t *testing.T) {
	dir := setupWorkspace(t)
	writeConfig(t, dir, "broken: [\n")

	if _, _, err := runCLI(t, "", "init", "--force", "--format", "toml", "--colors"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".cloudify", "config.yaml")); !os.IsNotExist(err) {
		t.Error("old yaml config should be removed")
	}

	tomlPath := filepath.Join(dir, ".cloudify", "config.toml")
	data, err := os.ReadFile(tomlPath)
	if err != nil {
		t.Fatalf("reading toml config: %v", err)
	}
	if !strings.Contains(string(data), "colors = true") {
		t.Errorf("toml config missing colors:\n%s", data)
	}
	if _, err := config.LoadLoggingSection(tomlPath); err != nil {
		t.Errorf("toml config unreadable: %v", err)
	}
}

func TestInit_LogDir(t *testing.T) {
	dir := setupWorkspace(t)
	logDir := filepath.Join(dir, "var", "log")

	if _, _, err := runCLI(t, "", "init", "--log-dir", logDir); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sec, err := config.LoadLoggingSection(filepath.Join(dir, ".cloudify", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if sec.Filename != filepath.Join(logDir, "cli.log") {
		t.Errorf("filename = %q", sec.Filename)
	}
}

func TestInit_UnknownFormat(t *testing.T) {
	setupWorkspace(t)

	if _, _, err := runCLI(t, "", "init", "--format", "ini"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
