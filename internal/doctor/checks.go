package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/thoreinstein/cfy/internal/config"
	"github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/logging"
	"github.com/thoreinstein/cfy/internal/paths"
)

// logDirPerm is the permission used when --fix creates a log directory.
const logDirPerm os.FileMode = 0o755

// ConfigFileCheck validates that the configuration file decodes and has a
// complete logging section.
type ConfigFileCheck struct {
	path        string
	initialized bool

	// Section is the decoded logging section, set by Run on success.
	Section *config.LoggingSection
}

var _ Check = (*ConfigFileCheck)(nil)

// NewConfigFileCheck creates a check for the configuration file at path.
// When initialized is false the check only reports that defaults are used.
func NewConfigFileCheck(path string, initialized bool) *ConfigFileCheck {
	return &ConfigFileCheck{path: path, initialized: initialized}
}

// Name returns the unique identifier for this check.
func (c *ConfigFileCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigFileCheck) Category() string {
	return "config"
}

// Run decodes the logging section of the configuration file.
func (c *ConfigFileCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if !c.initialized {
		result.Status = SeverityInfo
		result.Message = "no configuration file, built-in logging defaults are used"
		result.FixHint = "Run: cfy init"
		return result
	}

	sec, err := config.LoadLoggingSection(c.path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Check the logging section of " + c.path
		return result
	}

	c.Section = sec
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("logging section configures %d logger(s)", len(sec.Loggers))
	return result
}

// LoggerLevelsCheck validates that every logger level in a logging section
// is a standard level name.
type LoggerLevelsCheck struct {
	source *ConfigFileCheck
}

var _ Check = (*LoggerLevelsCheck)(nil)

// NewLoggerLevelsCheck creates a check for the levels decoded by source.
// It must run after source.
func NewLoggerLevelsCheck(source *ConfigFileCheck) *LoggerLevelsCheck {
	return &LoggerLevelsCheck{source: source}
}

// Name returns the unique identifier for this check.
func (c *LoggerLevelsCheck) Name() string {
	return "logger-levels"
}

// Category returns the grouping for this check.
func (c *LoggerLevelsCheck) Category() string {
	return "config"
}

// Run resolves each configured level.
func (c *LoggerLevelsCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	sec := c.source.Section
	if sec == nil {
		result.Status = SeverityInfo
		result.Message = "skipped, no logging section was loaded"
		return result
	}

	invalid := make(map[string]any)
	for name, level := range sec.Loggers {
		if _, err := logging.ParseLevel(level); err != nil {
			invalid[name] = level
		}
	}

	if len(invalid) > 0 {
		names := make([]string, 0, len(invalid))
		for name := range invalid {
			names = append(names, name)
		}
		slices.Sort(names)

		result.Status = SeverityError
		result.Message = fmt.Sprintf("unknown level for %d logger(s): %v", len(invalid), names)
		result.Details = invalid
		result.FixHint = "Use one of DEBUG, INFO, WARNING, ERROR, CRITICAL or NOTSET"
		return result
	}

	result.Status = SeverityPass
	result.Message = "all logger levels are valid"
	return result
}

// LogPathCheck validates that the directory of a log file exists and is
// writable. A missing directory is fixable.
type LogPathCheck struct {
	name string
	file func() string

	missing string
}

var (
	_ Check = (*LogPathCheck)(nil)
	_ Fixer = (*LogPathCheck)(nil)
)

// NewLogPathCheck creates a check named name for the log file path.
func NewLogPathCheck(name, path string) *LogPathCheck {
	return &LogPathCheck{name: name, file: func() string { return path }}
}

// NewConfiguredLogPathCheck creates a check for the filename of the logging
// section decoded by source. It must run after source.
func NewConfiguredLogPathCheck(source *ConfigFileCheck) *LogPathCheck {
	return &LogPathCheck{
		name: "configured-log-dir",
		file: func() string {
			if source.Section == nil {
				return ""
			}
			return source.Section.Filename
		},
	}
}

// Name returns the unique identifier for this check.
func (c *LogPathCheck) Name() string {
	return c.name
}

// Category returns the grouping for this check.
func (c *LogPathCheck) Category() string {
	return "filesystem"
}

// Run checks the log directory.
func (c *LogPathCheck) Run() *CheckResult {
	c.missing = ""
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	file := c.file()
	if file == "" {
		result.Status = SeverityInfo
		result.Message = "skipped, no log file configured"
		return result
	}
	dir := filepath.Dir(file)
	result.Details = map[string]any{"file": file, "directory": dir}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		c.missing = dir
		result.Status = SeverityWarning
		result.Message = "log directory does not exist yet: " + dir
		result.Fixable = true
		result.FixHint = "Run: cfy doctor --fix (or mkdir -p " + dir + ")"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat log directory: %v", err)
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = dir + " exists but is not a directory"
		result.FixHint = "Remove " + dir + " or point the logging filename elsewhere"
		return result
	}

	if runtime.GOOS != "windows" {
		result.Details["permissions"] = fmt.Sprintf("%04o", info.Mode().Perm())
	}

	if err := probeWritable(dir); err != nil {
		result.Status = SeverityError
		result.Message = "log directory is not writable: " + dir
		result.FixHint = "chmod u+w " + dir
		return result
	}

	result.Status = SeverityPass
	result.Message = "log directory is writable: " + dir
	return result
}

// CanFix reports whether the last Run found a missing directory.
func (c *LogPathCheck) CanFix() bool {
	return c.missing != ""
}

// Fix creates the missing log directory.
func (c *LogPathCheck) Fix() []FixResult {
	if c.missing == "" {
		return nil
	}

	result := FixResult{Path: c.missing}
	if err := paths.EnsureDir(c.missing, logDirPerm); err != nil {
		result.Description = fmt.Sprintf("failed to create directory: %v", err)
		result.Error = errors.Wrapf(err, "creating %s", c.missing)
		return []FixResult{result}
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("created directory (mode %04o)", logDirPerm)
	c.missing = ""
	return []FixResult{result}
}

// probeWritable creates and removes a temporary file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".cfy-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
