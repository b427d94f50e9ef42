package events

import (
	"strings"

	"github.com/fatih/color"
)

// PrefixFunc builds the one-line message printed for an event.
type PrefixFunc func(Event) string

// Formatter turns an event into its one-line message.
type Formatter interface {
	Format(e Event) string
}

// FormatterFor returns the colour-aware formatter when colors is true and
// the plain one otherwise.
func FormatterFor(colors bool) Formatter {
	if colors {
		return NewColorfulFormatter()
	}
	return PlainFormatter{}
}

// PlainFormatter renders events without escape sequences.
type PlainFormatter struct{}

// Format implements Formatter.
func (PlainFormatter) Format(e Event) string {
	return join(e.Parts(), identity)
}

// ColorfulFormatter renders events with ANSI colours. Whether escape codes
// are emitted follows color.NoColor.
type ColorfulFormatter struct {
	timestamp  *color.Color
	indicator  *color.Color
	deployment *color.Color
	operation  *color.Color
	eventType  *color.Color
	levels     map[string]*color.Color
}

// NewColorfulFormatter returns a ColorfulFormatter with the default palette.
func NewColorfulFormatter() *ColorfulFormatter {
	warn := color.New(color.FgYellow)
	errc := color.New(color.FgRed, color.Bold)
	return &ColorfulFormatter{
		timestamp:  color.New(color.FgHiBlack),
		indicator:  color.New(color.FgHiBlack),
		deployment: color.New(color.FgHiCyan),
		operation:  color.New(color.FgHiMagenta),
		eventType:  color.New(color.FgHiBlue),
		levels: map[string]*color.Color{
			"DEBUG":    color.New(color.FgMagenta),
			"INFO":     color.New(color.FgGreen),
			"WARNING":  warn,
			"WARN":     warn,
			"ERROR":    errc,
			"CRITICAL": errc,
			"FATAL":    errc,
		},
	}
}

// Format implements Formatter.
func (f *ColorfulFormatter) Format(e Event) string {
	p := e.Parts()
	return join(p, func(field, s string) string {
		var c *color.Color
		switch field {
		case fieldTimestamp:
			c = f.timestamp
		case fieldIndicator:
			c = f.indicator
		case fieldDeployment:
			c = f.deployment
		case fieldOperation:
			c = f.operation
		case fieldEventType:
			c = f.eventType
		case fieldLevel, fieldText:
			c = f.levels[p.Level]
		}
		if c == nil {
			return s
		}
		return c.Sprint(s)
	})
}

const (
	fieldTimestamp  = "timestamp"
	fieldIndicator  = "indicator"
	fieldDeployment = "deployment"
	fieldOperation  = "operation"
	fieldLevel      = "level"
	fieldEventType  = "event_type"
	fieldText       = "text"
)

func identity(_, s string) string { return s }

// join lays out the parts of an event, passing each piece through paint.
func join(p Parts, paint func(field, s string) string) string {
	var b strings.Builder

	b.WriteString(paint(fieldTimestamp, p.Timestamp))
	b.WriteByte(' ')
	b.WriteString(paint(fieldIndicator, p.Indicator))
	b.WriteByte(' ')
	b.WriteString(paint(fieldDeployment, "<"+p.Deployment+">"))
	b.WriteByte(' ')
	if p.Operation != "" {
		b.WriteString(paint(fieldOperation, "["+p.Operation+"]"))
		b.WriteByte(' ')
	}

	switch {
	case p.Level != "":
		b.WriteString(paint(fieldLevel, p.Level+":"))
		b.WriteByte(' ')
	case p.EventType != "":
		b.WriteString(paint(fieldEventType, "'"+p.EventType+"'"))
		b.WriteByte(' ')
	}
	b.WriteString(paint(fieldText, p.Text))

	return strings.TrimRight(b.String(), " ")
}
