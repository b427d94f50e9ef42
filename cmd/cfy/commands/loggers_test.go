package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggers_FromConfig(t *testing.T) {
	dir := setupWorkspace(t)
	writeConfig(t, dir, `logging:
  filename: `+filepath.Join(dir, "logs", "cli.log")+`
  loggers:
    cloudify.rest_client.http: warning
    foo: debug
`)

	stdout, _, err := runCLI(t, "", "loggers", "--json")
	if err != nil {
		t.Fatalf("loggers failed: %v", err)
	}

	var got []loggerInfo
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}

	want := []loggerInfo{
		{"cloudify.cli.main", "INFO"},
		{"cloudify.rest_client.http", "WARNING"},
		{"foo", "DEBUG"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("logger %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoggers_Table(t *testing.T) {
	setupWorkspace(t)

	stdout, _, err := runCLI(t, "", "loggers")
	if err != nil {
		t.Fatalf("loggers failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one logger, got:\n%s", stdout)
	}
	if fields := strings.Fields(lines[0]); len(fields) != 2 || fields[0] != "NAME" || fields[1] != "LEVEL" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); len(fields) != 2 || fields[0] != "cloudify.cli.main" || fields[1] != "INFO" {
		t.Errorf("row = %q", lines[1])
	}
}
