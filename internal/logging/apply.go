package logging

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"

	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
	"github.com/thoreinstein/cfy/internal/paths"
)

// logDirPerm is the permission used when creating log directories.
const logDirPerm = 0o755

// Apply installs cfg into the registry. Every level is resolved and every
// handler is built before anything changes, so a failing configuration
// leaves the registry as it was: no logger is reconfigured and no name is
// added to the registered set.
func (r *Registry) Apply(cfg *Configuration) error {
	if cfg == nil {
		return errors.Wrap(cfyerrors.ErrConfigParse, "nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	defaultLevel, hasDefault := slog.Level(0), cfg.Level != ""
	if hasDefault {
		lvl, err := ParseLevel(cfg.Level)
		if err != nil {
			return errors.Wrap(err, "default level")
		}
		defaultLevel = lvl
	}

	type pending struct {
		handlers []string
		level    slog.Level
		setLevel bool
	}
	plan := make(map[string]pending, len(cfg.Loggers))
	for name, spec := range cfg.Loggers {
		p := pending{handlers: spec.Handlers, level: defaultLevel, setLevel: hasDefault}
		if spec.Level != "" {
			lvl, err := ParseLevel(spec.Level)
			if err != nil {
				return errors.Wrapf(err, "logger %q", name)
			}
			p.level, p.setLevel = lvl, true
		}
		plan[name] = p
	}

	built, opened, err := r.buildHandlers(cfg)
	if err != nil {
		for _, w := range opened {
			_ = w.Close()
		}
		return err
	}

	for name, p := range plan {
		st := r.state(name)
		hs := make([]slog.Handler, 0, len(p.handlers))
		for _, hn := range p.handlers {
			hs = append(hs, built[hn])
		}
		st.setHandler(NewMultiHandler(hs...))
		if p.setLevel {
			st.level.Set(p.level)
		}
	}

	r.mu.Lock()
	for name := range plan {
		r.registered[name] = struct{}{}
	}
	for path, w := range opened {
		r.files[path] = w
		r.closers = append(r.closers, w)
	}
	r.mu.Unlock()

	return nil
}

// buildHandlers returns the handlers of cfg and the log files it had to
// open, keyed by cleaned path. A file the registry already has open is
// shared rather than opened twice.
func (r *Registry) buildHandlers(cfg *Configuration) (map[string]slog.Handler, map[string]*RotatingWriter, error) {
	built := make(map[string]slog.Handler, len(cfg.Handlers))
	opened := make(map[string]*RotatingWriter)

	for _, name := range cfg.HandlerNames() {
		spec := cfg.Handlers[name]

		opts := &slog.HandlerOptions{Level: levelAll}
		if spec.Level != "" {
			lvl, err := ParseLevel(spec.Level)
			if err != nil {
				return nil, opened, errors.Wrapf(err, "handler %q", name)
			}
			opts.Level = lvl
		}

		var out io.Writer
		switch spec.Type {
		case HandlerFile:
			path := filepath.Clean(spec.Filename)
			w := r.openFile(path)
			if w == nil {
				w = opened[path]
			}
			if w == nil {
				var err error
				if w, err = openLogFile(path, spec); err != nil {
					return nil, opened, err
				}
				opened[path] = w
			}
			out = w
		default:
			out = r.stdout
			if spec.Stream == "stderr" {
				out = r.stderr
			}
		}

		built[name] = newFormattedHandler(out, cfg.Formatters[spec.Formatter], opts)
	}

	return built, opened, nil
}

// newFormattedHandler builds the slog handler for a formatter spec.
func newFormattedHandler(out io.Writer, f FormatterSpec, opts *slog.HandlerOptions) slog.Handler {
	if f.Format == FormatJSON {
		jsonOpts := *opts
		jsonOpts.ReplaceAttr = redactAttr
		return slog.NewJSONHandler(out, &jsonOpts)
	}
	return NewTemplateHandler(out, f.Template, opts)
}

// openFile returns the writer the registry already has open on path, or nil.
// A shared writer keeps the rotation settings it was opened with.
func (r *Registry) openFile(path string) *RotatingWriter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.files[path]
}

// openLogFile ensures the log directory exists and opens the file.
func openLogFile(path string, spec HandlerSpec) (*RotatingWriter, error) {
	dir := filepath.Dir(path)
	if err := paths.EnsureDir(dir, logDirPerm); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "creating log directory %s", dir), cfyerrors.ErrFilesystem)
	}

	w, err := NewRotatingWriter(path, spec.MaxBytes, spec.BackupCount)
	if err != nil {
		return nil, errors.Mark(err, cfyerrors.ErrFilesystem)
	}
	return w, nil
}
