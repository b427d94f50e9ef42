package logging

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/thoreinstein/cfy/internal/config"
	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
)

// Configurator sets up the loggers of a Registry from the built-in
// defaults and, once the project is initialized, from the logging section
// of its configuration file.
type Configurator struct {
	state    config.Provider
	registry *Registry

	// loadSection reads the logging section; replaced in tests.
	loadSection func(path string) (*config.LoggingSection, error)
}

// NewConfigurator returns a Configurator for registry driven by state.
func NewConfigurator(state config.Provider, registry *Registry) *Configurator {
	return &Configurator{
		state:       state,
		registry:    registry,
		loadSection: config.LoadLoggingSection,
	}
}

// Configure runs the configuration pass. It is meant to be called once per
// process, before any command logs.
//
// Errors match ErrConfigParse, ErrUnknownLevel or ErrFilesystem. When the
// file configuration fails, the defaults stay applied and none of the
// file's loggers are registered.
func (c *Configurator) Configure() error {
	suppressRepeatedWarnings(c.registry)

	if err := c.configureDefaults(); err != nil {
		return errors.Wrap(err, "configuring default loggers")
	}

	if c.state.IsInitialized() {
		if err := c.configureFromFile(c.state.ConfigurationPath()); err != nil {
			return errors.Wrap(err, "configuring loggers from file")
		}
	}

	c.registry.setMain(c.registry.Logger(MainLoggerName))

	if c.state.UseColors() {
		c.registry.setColors(true)
		color.NoColor = false
	}

	return nil
}

func (c *Configurator) configureDefaults() error {
	cfg := DefaultConfiguration()
	cfg.SetFilename(c.state.DefaultLogFile())
	cfg.AttachAll(MainLoggerName, "")

	if err := c.registry.Apply(cfg); err != nil {
		return err
	}
	c.registry.SetLevel(MainLoggerName, slog.LevelInfo)
	return nil
}

func (c *Configurator) configureFromFile(path string) error {
	sec, err := c.loadSection(path)
	if err != nil {
		return err
	}

	cfg, err := FromSection(sec)
	if err != nil {
		return err
	}
	return c.registry.Apply(cfg)
}

// FromSection builds a Configuration from a configuration file's logging
// section: the built-in handlers, the file handler pointed at the section's
// filename, and every listed logger attached to all handlers at its level.
func FromSection(sec *config.LoggingSection) (*Configuration, error) {
	if sec == nil {
		return nil, errors.Wrap(cfyerrors.ErrConfigParse, "missing logging section")
	}

	cfg := DefaultConfiguration()
	cfg.SetFilename(sec.Filename)
	for name, level := range sec.Loggers {
		// Resolve here too: an empty level would otherwise mean "default".
		if _, err := ParseLevel(level); err != nil {
			return nil, errors.Wrapf(err, "logger %q", name)
		}
		cfg.AttachAll(name, level)
	}
	return cfg, nil
}
