package logging

import (
	_ "embed"
	"maps"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// HandlerType names a kind of sink.
type HandlerType string

const (
	// HandlerConsole writes to stdout or stderr.
	HandlerConsole HandlerType = "console"
	// HandlerFile appends to a size-rotated file.
	HandlerFile HandlerType = "file"
)

// Names of the handlers in the built-in configuration.
const (
	ConsoleHandlerName = "console"
	FileHandlerName    = "file"
)

// FormatterSpec describes how records are turned into text.
type FormatterSpec struct {
	Format   Format `yaml:"format"`
	Template string `yaml:"template,omitempty"`
}

// HandlerSpec describes a sink and the formatter it uses.
type HandlerSpec struct {
	Type        HandlerType `yaml:"type"`
	Stream      string      `yaml:"stream,omitempty"`
	Filename    string      `yaml:"filename,omitempty"`
	Formatter   string      `yaml:"formatter,omitempty"`
	Level       string      `yaml:"level,omitempty"`
	MaxBytes    int64       `yaml:"max_bytes,omitempty"`
	BackupCount int         `yaml:"backup_count,omitempty"`
}

// LoggerSpec attaches handlers to a named logger. An empty Level falls back
// to the configuration's default level.
type LoggerSpec struct {
	Handlers []string `yaml:"handlers"`
	Level    string   `yaml:"level,omitempty"`
}

// Configuration is a complete logging setup: formatters, handlers and the
// loggers they are attached to.
type Configuration struct {
	Level      string                   `yaml:"level,omitempty"`
	Formatters map[string]FormatterSpec `yaml:"formatters"`
	Handlers   map[string]HandlerSpec   `yaml:"handlers"`
	Loggers    map[string]LoggerSpec    `yaml:"loggers,omitempty"`
}

//go:embed default.yaml
var defaultConfigYAML []byte

var embeddedDefault = sync.OnceValue(func() *Configuration {
	var cfg Configuration
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		panic(errors.Wrap(err, "decoding embedded logging configuration"))
	}
	return &cfg
})

// DefaultConfiguration returns a fresh copy of the built-in configuration.
// Callers may modify the result freely.
func DefaultConfiguration() *Configuration {
	return embeddedDefault().Clone()
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := &Configuration{
		Level:      c.Level,
		Formatters: maps.Clone(c.Formatters),
		Handlers:   maps.Clone(c.Handlers),
	}
	if c.Loggers != nil {
		out.Loggers = make(map[string]LoggerSpec, len(c.Loggers))
		for name, spec := range c.Loggers {
			out.Loggers[name] = LoggerSpec{
				Handlers: slices.Clone(spec.Handlers),
				Level:    spec.Level,
			}
		}
	}
	return out
}

// HandlerNames returns the configured handler names in sorted order.
func (c *Configuration) HandlerNames() []string {
	return slices.Sorted(maps.Keys(c.Handlers))
}

// SetFilename points the file handler at path.
func (c *Configuration) SetFilename(path string) {
	spec := c.Handlers[FileHandlerName]
	spec.Type = HandlerFile
	spec.Filename = path
	c.Handlers[FileHandlerName] = spec
}

// Filename returns the file handler's target path, if any.
func (c *Configuration) Filename() string {
	return c.Handlers[FileHandlerName].Filename
}

// AttachAll attaches every configured handler to the named logger at the
// given level. An empty level keeps the configuration default.
func (c *Configuration) AttachAll(logger, level string) {
	if c.Loggers == nil {
		c.Loggers = make(map[string]LoggerSpec)
	}
	c.Loggers[logger] = LoggerSpec{
		Handlers: c.HandlerNames(),
		Level:    level,
	}
}

// Validate checks references between loggers, handlers and formatters.
// Level names are resolved later, when the configuration is applied.
func (c *Configuration) Validate() error {
	for name, h := range c.Handlers {
		switch h.Type {
		case HandlerConsole:
			if h.Stream != "" && h.Stream != "stdout" && h.Stream != "stderr" {
				return errors.Wrapf(cfyerrors.ErrConfigParse, "handler %q: unknown stream %q", name, h.Stream)
			}
		case HandlerFile:
			if h.Filename == "" {
				return errors.Wrapf(cfyerrors.ErrConfigParse, "handler %q: filename is required", name)
			}
		default:
			return errors.Wrapf(cfyerrors.ErrConfigParse, "handler %q: unknown type %q", name, h.Type)
		}

		if h.Formatter == "" {
			continue
		}
		f, ok := c.Formatters[h.Formatter]
		if !ok {
			return errors.Wrapf(cfyerrors.ErrConfigParse, "handler %q: unknown formatter %q", name, h.Formatter)
		}
		if f.Format != "" && f.Format != FormatText && f.Format != FormatJSON {
			return errors.Wrapf(cfyerrors.ErrConfigParse, "formatter %q: unknown format %q", h.Formatter, f.Format)
		}
	}

	for name, l := range c.Loggers {
		for _, hn := range l.Handlers {
			if _, ok := c.Handlers[hn]; !ok {
				return errors.Wrapf(cfyerrors.ErrConfigParse, "logger %q: unknown handler %q", name, hn)
			}
		}
	}
	return nil
}
