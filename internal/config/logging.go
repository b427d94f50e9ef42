package config

import (
	"bytes"
	"maps"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/paths"
	"github.com/thoreinstein/cfy/pkg/fileutil"
)

// LoggingSection is the `logging` section of the configuration file.
// Loggers maps logger names to level names.
type LoggingSection struct {
	Filename string            `yaml:"filename" toml:"filename"`
	Loggers  map[string]string `yaml:"loggers" toml:"loggers"`
}

// Document is the on-disk layout of the configuration file.
type Document struct {
	Colors  bool            `yaml:"colors" toml:"colors"`
	Logging *LoggingSection `yaml:"logging" toml:"logging"`
}

// DefaultLoggers are the loggers written by `cfy init`.
var DefaultLoggers = map[string]string{
	"cloudify.cli.main":         "info",
	"cloudify.rest_client.http": "info",
}

// NewDocument returns the document `cfy init` writes.
func NewDocument(logFile string, colors bool) *Document {
	return &Document{
		Colors: colors,
		Logging: &LoggingSection{
			Filename: logFile,
			Loggers:  maps.Clone(DefaultLoggers),
		},
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadLoggingSection reads the logging section of the configuration file at
// path. The file must be UTF-8. Files ending in .toml are decoded as TOML,
// everything else as YAML. Both `filename` and `loggers` are required.
// Every failure matches ErrConfigParse.
func LoadLoggingSection(path string) (*LoggingSection, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), cfyerrors.ErrConfigParse)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.WithHint(errors.Wrapf(cfyerrors.ErrConfigParse, "%s is not valid UTF-8", path),
			"Save the file with UTF-8 encoding")
	}

	var doc Document
	if fileType(path) == "toml" {
		err = toml.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decoding %s", path), cfyerrors.ErrConfigParse)
	}

	sec := doc.Logging
	switch {
	case sec == nil:
		return nil, errors.Wrapf(cfyerrors.ErrConfigParse, "%s: missing logging section", path)
	case sec.Filename == "":
		return nil, errors.Wrapf(cfyerrors.ErrConfigParse, "%s: logging.filename is required", path)
	case sec.Loggers == nil:
		return nil, errors.Wrapf(cfyerrors.ErrConfigParse, "%s: logging.loggers is required", path)
	}

	sec.Filename = expandHome(sec.Filename)
	return sec, nil
}

// WriteDocument writes doc to path atomically, as TOML when path ends in
// .toml and as YAML otherwise. The parent directory is created if needed.
func WriteDocument(path string, doc *Document) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if fileType(path) == "toml" {
		return fileutil.AtomicWriteTOML(path, doc)
	}
	return fileutil.AtomicWriteYAML(path, doc)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home := paths.Home()
	if home == "" {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
