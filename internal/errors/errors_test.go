package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrConfigParse), ExitUser),
			want: "loading config: invalid logging configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrUnknownLevel, ExitUser),
			wantTarget: ErrUnknownLevel,
			wantIs:     true,
		},
		{
			name:       "unwrap through Wrapf",
			err:        NewExitError(Wrapf(ErrFilesystem, "creating %s", "/tmp/x"), ExitSystem),
			wantTarget: ErrFilesystem,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrConfigParse,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestMark_PreservesCause(t *testing.T) {
	cause := &os.PathError{Op: "mkdir", Path: "/nope", Err: os.ErrPermission}
	err := Mark(Wrap(cause, "creating log directory"), ErrFilesystem)

	if !Is(err, ErrFilesystem) {
		t.Error("marked error should match ErrFilesystem")
	}
	if !Is(err, os.ErrPermission) {
		t.Error("marked error should still match the os cause")
	}

	var pathErr *os.PathError
	if !As(err, &pathErr) {
		t.Fatal("As() should find *os.PathError")
	}
	if pathErr.Path != "/nope" {
		t.Errorf("PathError.Path = %q, want /nope", pathErr.Path)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		path     string
		wantCode int
		wantHint string
	}{
		{
			name:     "parse error is a user error",
			err:      Wrap(ErrConfigParse, "decoding"),
			path:     "/w/.cloudify/config.yaml",
			wantCode: ExitUser,
			wantHint: "Check the logging section of /w/.cloudify/config.yaml",
		},
		{
			name:     "unknown level is a user error",
			err:      Wrapf(ErrUnknownLevel, "%q", "NOTALEVEL"),
			wantCode: ExitUser,
			wantHint: "Check the logging section of your configuration file",
		},
		{
			name:     "filesystem error is a system error",
			err:      Mark(New("mkdir failed"), ErrFilesystem),
			wantCode: ExitSystem,
			wantHint: "Check permissions on the log directory",
		},
		{
			name:     "missing config file is a user error",
			err:      Wrapf(ErrNotFound, "config file %s", "/nope.yaml"),
			wantCode: ExitUser,
			wantHint: "Check the path given to --config",
		},
		{
			name:     "uninitialized project is a user error",
			err:      ErrNotInitialized,
			wantCode: ExitUser,
			wantHint: "Run: cfy init",
		},
		{
			name:     "existing exit error is kept",
			err:      NewUserError(New("bad flag"), "fix it"),
			wantCode: ExitUser,
			wantHint: "fix it",
		},
		{
			name:     "other errors default to system",
			err:      New("boom"),
			wantCode: ExitSystem,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitErr *ExitError
			if !errors.As(Classify(tt.err, tt.path), &exitErr) {
				t.Fatal("Classify() should return an ExitError")
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			if exitErr.Suggestion != tt.wantHint {
				t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, tt.wantHint)
			}
		})
	}

	if Classify(nil, "") != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrConfigParse", ErrConfigParse, "invalid logging configuration"},
		{"ErrUnknownLevel", ErrUnknownLevel, "unknown log level"},
		{"ErrFilesystem", ErrFilesystem, "log filesystem error"},
		{"ErrNotFound", ErrNotFound, "resource not found"},
		{"ErrNotInitialized", ErrNotInitialized, "not initialized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUser", ExitUser, 1},
		{"ExitSystem", ExitSystem, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewExitErrorWithSuggestion", func(t *testing.T) {
		err := errors.New("oops")
		e := NewExitErrorWithSuggestion(err, 123, "try this")
		if e.Err != err {
			t.Errorf("Err = %v, want %v", e.Err, err)
		}
		if e.Code != 123 {
			t.Errorf("Code = %d, want 123", e.Code)
		}
		if e.Suggestion != "try this" {
			t.Errorf("Suggestion = %q, want 'try this'", e.Suggestion)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(errors.New("config error"))
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "Run: cfy init --force" {
			t.Errorf("Suggestion = %q, want 'Run: cfy init --force'", e.Suggestion)
		}
	})
}
