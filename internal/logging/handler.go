package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LoggerKey is the attribute key carrying the name of the logger that
// emitted a record. Text handlers render it through the {logger} token.
const LoggerKey = "logger"

// Template tokens understood by Handler.
const (
	TokenTime      = "{time}"
	TokenTimestamp = "{timestamp}"
	TokenLevel     = "{level}"
	TokenLogger    = "{logger}"
	TokenMessage   = "{message}"
)

// DefaultTemplate is the layout used when a formatter names no template.
const DefaultTemplate = TokenTime + " " + TokenLevel + " " + TokenMessage

// timestampLayout is the layout of the {timestamp} token.
const timestampLayout = "2006-01-02 15:04:05.000"

// Handler implements slog.Handler for template-driven text output.
// It provides colorized output when the writer supports it.
type Handler struct {
	opts     slog.HandlerOptions
	out      io.Writer
	mu       *sync.Mutex
	template string
	attrs    []slog.Attr
	groups   []string

	// Colors
	timeColor  *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewTemplateHandler creates a text handler that lays out each record
// according to template. An empty template means DefaultTemplate.
func NewTemplateHandler(out io.Writer, template string, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	if template == "" {
		template = DefaultTemplate
	}

	h := &Handler{
		opts:     *opts,
		out:      out,
		mu:       &sync.Mutex{},
		template: template,
	}

	// Only initialize colors if the writer supports them
	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.debugColor = color.New(color.FgMagenta)
		h.infoColor = color.New(color.FgGreen)
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
		h.keyColor = color.New(color.FgCyan)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats the record and writes it as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var (
		buf    bytes.Buffer
		logger string
		extra  []slog.Attr
	)

	collect := func(a slog.Attr) {
		if a.Key == LoggerKey {
			logger = a.Value.String()
			return
		}
		extra = append(extra, a)
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.qualify(a.Key)
		collect(a)
		return true
	})

	replacer := strings.NewReplacer(
		TokenTime, h.formatTime(r.Time, time.Kitchen),
		TokenTimestamp, h.formatTime(r.Time, timestampLayout),
		TokenLevel, h.formatLevel(r.Level),
		TokenLogger, logger,
		TokenMessage, r.Message,
	)
	line := replacer.Replace(h.template)
	if r.Time.IsZero() {
		line = strings.TrimLeft(line, " ")
	}
	buf.WriteString(line)

	for _, a := range extra {
		h.appendAttr(&buf, a)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	s := t.Format(layout)
	if h.timeColor != nil {
		s = h.timeColor.Sprint(s)
	}
	return s
}

func (h *Handler) formatLevel(level slog.Level) string {
	levelStr := LevelName(level)
	if h.timeColor == nil { // timeColor is the proxy for "useColor"
		return levelStr
	}
	switch {
	case level >= slog.LevelError:
		return h.errorColor.Sprint(levelStr)
	case level >= slog.LevelWarn:
		return h.warnColor.Sprint(levelStr)
	case level >= slog.LevelInfo:
		return h.infoColor.Sprint(levelStr)
	default:
		return h.debugColor.Sprint(levelStr)
	}
}

func (h *Handler) appendAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			ga.Key = a.Key + "." + ga.Key
			h.appendAttr(buf, ga)
		}
		return
	}

	displayKey := key
	if h.keyColor != nil {
		displayKey = h.keyColor.Sprint(key)
	}

	value := a.Value.Any()

	// Redact sensitive values
	if ShouldMask(a.Key) {
		value = MaskValue(fmt.Sprint(value))
	} else if strVal, ok := value.(string); ok {
		if ContainsTokenPrefix(strVal) {
			value = MaskValue(strVal)
		}
	}

	fmt.Fprintf(buf, " %s=%v", displayKey, value)
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	// Copy so that loggers derived from the same handler don't share a backing array.
	newH.attrs = make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)
	for i, a := range attrs {
		a.Key = h.qualify(a.Key)
		newH.attrs[len(h.attrs)+i] = a
	}
	return &newH
}

// qualify prefixes key with the open groups. Attributes keep the groups
// that were open when they were added.
func (h *Handler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
