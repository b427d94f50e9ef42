package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/paths"
)

// Keys understood by Viper.
const (
	KeyColors  = "colors"
	KeyLogFile = "log_file"
)

// Provider reports the client state the logging configurator depends on.
type Provider interface {
	// IsInitialized reports whether a project configuration file exists.
	IsInitialized() bool
	// ConfigurationPath returns the project configuration file.
	ConfigurationPath() string
	// UseColors reports whether coloured event output is enabled.
	UseColors() bool
	// DefaultLogFile returns the log file used before configuration is read.
	DefaultLogFile() string
}

// State is the Provider backed by the project configuration file.
type State struct {
	configPath     string
	initialized    bool
	colors         bool
	defaultLogFile string
}

var _ Provider = (*State)(nil)

// IsInitialized reports whether the configuration file exists.
func (s *State) IsInitialized() bool { return s.initialized }

// ConfigurationPath returns the configuration file path. It is set even
// when the file does not exist yet.
func (s *State) ConfigurationPath() string { return s.configPath }

// UseColors reports whether the colors setting is enabled.
func (s *State) UseColors() bool { return s.colors }

// DefaultLogFile returns the log file used before the project
// configuration is read.
func (s *State) DefaultLogFile() string { return s.defaultLogFile }

// Init initializes Viper with default configuration.
// Call this once at application startup before Load.
func Init() {
	viper.SetConfigType("yaml")

	// Environment variable support
	viper.SetEnvPrefix("CFY")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault(KeyColors, false)
	viper.SetDefault(KeyLogFile, paths.DefaultLogFile())
}

// Locate returns the configuration file path and whether it exists.
// If path is provided it is returned as is. Otherwise the .cloudify
// directory is searched for from workDir upwards; when none is found the
// path under workDir is returned.
func Locate(workDir, path string) (string, bool) {
	if path != "" {
		_, err := os.Stat(path)
		return path, err == nil
	}

	initDir, ok := paths.FindInitDir(workDir)
	if !ok {
		initDir = filepath.Join(workDir, paths.InitDirName)
	}
	configPath := paths.ConfigFile(initDir)
	_, err := os.Stat(configPath)
	return configPath, err == nil
}

// DefaultLogFile returns the log file used until a project configuration
// is read: CFY_LOG_FILE or log_file when set, the XDG default otherwise.
func DefaultLogFile() string {
	if f := viper.GetString(KeyLogFile); f != "" {
		return f
	}
	return paths.DefaultLogFile()
}

// Load resolves the client state.
// If path is provided, that file is the configuration file and must exist.
// Otherwise a missing directory or file means "not initialized" and is not
// an error.
func Load(workDir, path string) (*State, error) {
	st := &State{}

	st.configPath, st.initialized = Locate(workDir, path)
	if path != "" && !st.initialized {
		return nil, errors.Wrapf(cfyerrors.ErrNotFound, "config file %s", path)
	}

	if st.initialized {
		viper.SetConfigFile(st.configPath)
		viper.SetConfigType(fileType(st.configPath))
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "reading config file %s", st.configPath), cfyerrors.ErrConfigParse)
		}
	}

	st.colors = viper.GetBool(KeyColors)
	st.defaultLogFile = DefaultLogFile()

	return st, nil
}

// fileType returns the Viper config type for path based on its extension.
func fileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}
