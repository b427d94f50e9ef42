package logging

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// MainLoggerName is the logger used for all CLI-level output.
const MainLoggerName = "cloudify.cli.main"

// defaultLoggerLevel is the level of a logger nobody has configured.
const defaultLoggerLevel = slog.LevelWarn

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Stdout and Stderr back console handlers. Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Registry owns the named loggers of one CLI invocation, the set of logger
// names that have been configured, and the handle to the main logger.
//
// A logger obtained from Logger before it is configured keeps working after
// a later Apply: it picks up the new handlers and level. Unconfigured loggers
// write WARNING and above to stderr.
type Registry struct {
	stdout io.Writer
	stderr io.Writer

	mu         sync.RWMutex
	loggers    map[string]*loggerState
	registered map[string]struct{}
	closers    []io.Closer
	files      map[string]*RotatingWriter
	main       *slog.Logger
	colors     bool

	fallback slog.Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts RegistryOptions) *Registry {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Registry{
		stdout:     stdout,
		stderr:     stderr,
		loggers:    make(map[string]*loggerState),
		registered: make(map[string]struct{}),
		files:      make(map[string]*RotatingWriter),
		fallback:   NewTemplateHandler(stderr, TokenMessage, &slog.HandlerOptions{Level: levelAll}),
	}
}

// Logger returns the logger with the given name, creating it if needed.
// Repeated calls with the same name share configuration.
func (r *Registry) Logger(name string) *slog.Logger {
	return slog.New(&namedHandler{state: r.state(name), fallback: r.fallback})
}

// Main returns the main logger handle, or nil before Configure has completed.
func (r *Registry) Main() *slog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.main
}

func (r *Registry) setMain(l *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.main = l
}

// UseColors reports whether the colour-aware event formatter was selected.
func (r *Registry) UseColors() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.colors
}

func (r *Registry) setColors(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors = v
}

// Level returns the level of the named logger. The boolean is false when no
// logger with that name exists yet.
func (r *Registry) Level(name string) (slog.Level, bool) {
	r.mu.RLock()
	st, ok := r.loggers[name]
	r.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return st.level.Level(), true
}

// SetLevel changes the level of the named logger, creating it if needed.
func (r *Registry) SetLevel(name string, level slog.Level) {
	r.state(name).level.Set(level)
}

// Registered returns the names of all configured loggers, sorted.
func (r *Registry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.registered))
}

// IsRegistered reports whether the named logger has been configured.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.registered[name]
	return ok
}

// Close releases every file opened by Apply.
func (r *Registry) Close() error {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	clear(r.files)
	r.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) state(name string) *loggerState {
	r.mu.RLock()
	st, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return st
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.loggers[name]; ok {
		return st
	}
	st = newLoggerState(name)
	r.loggers[name] = st
	return st
}

// loggerState is the shared, mutable part of a named logger.
type loggerState struct {
	name  string
	level *slog.LevelVar

	mu      sync.RWMutex
	handler slog.Handler // nil until configured
}

func newLoggerState(name string) *loggerState {
	st := &loggerState{
		name:  name,
		level: new(slog.LevelVar),
	}
	st.level.Set(defaultLoggerLevel)
	return st
}

func (s *loggerState) current() slog.Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

func (s *loggerState) setHandler(h slog.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// namedHandler resolves a logger's handlers at log time so loggers created
// before configuration see it. ops replays WithAttrs/WithGroup calls made on
// the logger.
type namedHandler struct {
	state    *loggerState
	fallback slog.Handler
	ops      []func(slog.Handler) slog.Handler
}

func (h *namedHandler) target() slog.Handler {
	inner := h.state.current()
	if inner == nil {
		inner = h.fallback
	}
	inner = inner.WithAttrs([]slog.Attr{slog.String(LoggerKey, h.state.name)})
	for _, op := range h.ops {
		inner = op(inner)
	}
	return inner
}

func (h *namedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.state.level.Level() {
		return false
	}
	inner := h.state.current()
	if inner == nil {
		inner = h.fallback
	}
	return inner.Enabled(ctx, level)
}

func (h *namedHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.target().Handle(ctx, r)
}

func (h *namedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithAttrs(attrs) })
}

func (h *namedHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(inner slog.Handler) slog.Handler { return inner.WithGroup(name) })
}

func (h *namedHandler) with(op func(slog.Handler) slog.Handler) *namedHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops)+1)
	copy(ops, h.ops)
	ops[len(h.ops)] = op
	return &namedHandler{state: h.state, fallback: h.fallback, ops: ops}
}
