package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	// AppName is the application name used for XDG subdirectories.
	AppName = "cfy"

	// InitDirName is the per-project directory created by `cfy init`.
	InitDirName = ".cloudify"

	// LogFileName is the base name of the default CLI log file.
	LogFileName = "cli.log"
)

// configFileNames lists the accepted configuration file names inside the
// init directory, in lookup order.
var configFileNames = []string{
	"config.yaml",
	"config.yml",
	"config.toml",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return ErrInvalidPath
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string if it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func StateHome() string {
	return xdg.StateHome
}

// LogDir returns the directory holding the default CLI log.
// Returns: <StateHome>/cfy/logs/
func LogDir() string {
	return filepath.Join(StateHome(), AppName, "logs")
}

// DefaultLogFile returns the log file used before a project is initialized.
func DefaultLogFile() string {
	return filepath.Join(LogDir(), LogFileName)
}

// FindInitDir walks from start towards the filesystem root looking for an
// InitDirName directory. It returns the directory path and true when found.
func FindInitDir(start string) (string, bool) {
	if start == "" {
		return "", false
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, InitDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ConfigFile returns the configuration file inside initDir. The first
// existing name from config.yaml, config.yml and config.toml wins; when none
// exists the config.yaml path is returned.
func ConfigFile(initDir string) string {
	for _, name := range configFileNames {
		p := filepath.Join(initDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(initDir, configFileNames[0])
}

// ConfigFileNames returns the accepted configuration file names in lookup order.
func ConfigFileNames() []string {
	return append([]string(nil), configFileNames...)
}
