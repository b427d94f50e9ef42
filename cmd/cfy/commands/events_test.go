package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/events"
)

const sampleEvents = `{"type":"cloudify_event","event_type":"workflow_started","timestamp":"2026-05-01 10:00:00.123","context":{"deployment_id":"hello"},"message":{"text":"Starting 'install' workflow execution"}}
{"type":"cloudify_log","level":"info","timestamp":"2026-05-01 10:00:01.456","context":{"deployment_id":"hello","node_id":"vm_1","operation":"cloudify.interfaces.lifecycle.create"},"message":{"text":"provisioning"}}
`

func TestEventsRender_Default(t *testing.T) {
	dir := setupWorkspace(t)
	path := writeEvents(t, dir, sampleEvents)

	stdout, _, err := runCLI(t, "", "events", "render", path)
	if err != nil {
		t.Fatalf("events render failed: %v", err)
	}

	want := "2026-05-01 10:00:00 CFY <hello> 'workflow_started' Starting 'install' workflow execution\n" +
		"2026-05-01 10:00:01 LOG <hello> [vm_1.create] INFO: provisioning\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestEventsRender_Verbose(t *testing.T) {
	dir := setupWorkspace(t)
	path := writeEvents(t, dir, `[{"type":"cloudify_event","message":{"text":"a<b"}}]`)

	stdout, _, err := runCLI(t, "", "-v", "events", "render", path)
	if err != nil {
		t.Fatalf("events render failed: %v", err)
	}

	want := "{\n    \"message\": {\n        \"text\": \"a<b\"\n    },\n    \"type\": \"cloudify_event\"\n}\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestEventsRender_Stdin(t *testing.T) {
	setupWorkspace(t)

	stdout, _, err := runCLI(t, sampleEvents, "events", "render", "-")
	if err != nil {
		t.Fatalf("events render failed: %v", err)
	}
	if strings.Count(stdout, "\n") != 2 {
		t.Errorf("expected two lines, got:\n%s", stdout)
	}
}

func TestEventsRender_Empty(t *testing.T) {
	setupWorkspace(t)

	stdout, _, err := runCLI(t, "", "events", "render")
	if err != nil {
		t.Fatalf("events render failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestEventsRender_Errors(t *testing.T) {
	dir := setupWorkspace(t)
	bad := writeEvents(t, dir, `{"type":`)

	if _, _, err := runCLI(t, "", "events", "render", bad); err == nil {
		t.Error("expected error for malformed events")
	}
	if _, _, err := runCLI(t, "", "events", "render", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEventsRender_Colors(t *testing.T) {
	dir := setupWorkspace(t)
	path := writeEvents(t, dir, sampleEvents)

	if _, _, err := runCLI(t, "", "init", "--colors"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	stdout, _, err := runCLI(t, "", "events", "render", path)
	if err != nil {
		t.Fatalf("events render failed: %v", err)
	}
	if color.NoColor {
		t.Error("colors setting should enable terminal colours")
	}
	if !strings.Contains(stdout, "\x1b[") {
		t.Errorf("expected coloured output, got %q", stdout)
	}
	if !strings.Contains(stdout, "provisioning") {
		t.Errorf("missing message text: %q", stdout)
	}
}

// stubFinder replaces the fuzzy finder for one test.
func stubFinder(t *testing.T, find func([]events.Event) (int, error)) {
	t.Helper()
	orig := findEvent
	findEvent = find
	t.Cleanup(func() { findEvent = orig })
}

func TestEventsRender_Interactive(t *testing.T) {
	tests := []struct {
		name    string
		find    func([]events.Event) (int, error)
		want    string
		wantErr bool
	}{
		{
			name: "picks second event",
			find: func(evs []events.Event) (int, error) {
				if len(evs) != 2 {
					return 0, errors.Newf("got %d events", len(evs))
				}
				return 1, nil
			},
			want: "\"node_id\": \"vm_1\"",
		},
		{
			name: "abort is not an error",
			find: func([]events.Event) (int, error) { return 0, fuzzyfinder.ErrAbort },
		},
		{
			name:    "finder failure",
			find:    func([]events.Event) (int, error) { return 0, errors.New("no tty") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupWorkspace(t)
			path := writeEvents(t, dir, sampleEvents)
			stubFinder(t, tt.find)

			stdout, _, err := runCLI(t, "", "events", "render", "-i", path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want == "" {
				if stdout != "" {
					t.Errorf("expected no output, got:\n%s", stdout)
				}
				return
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout)
			}
			if strings.Contains(stdout, "workflow_started") {
				t.Errorf("only the picked event should be printed:\n%s", stdout)
			}
		})
	}
}
