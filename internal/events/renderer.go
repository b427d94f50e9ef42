package events

import (
	"log/slog"
)

// Flags carries the command-line switches that affect rendering.
type Flags struct {
	Verbose bool
}

// Renderer prints a batch of events.
type Renderer func(events []Event)

// Selector picks the Renderer for a CLI invocation.
type Selector struct {
	logger *slog.Logger
	flags  Flags
	prefix PrefixFunc
}

// NewSelector returns a Selector writing to logger. A nil logger means
// slog.Default and a nil prefix means MessagePrefix.
func NewSelector(logger *slog.Logger, flags Flags, prefix PrefixFunc) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == nil {
		prefix = MessagePrefix
	}
	return &Selector{logger: logger, flags: flags, prefix: prefix}
}

// EventsRenderer returns the verbose renderer, which logs each event as
// indented JSON, when the verbose flag is set, and the default renderer,
// which logs each event's one-line message, otherwise. Both log at INFO,
// one record per event.
func (s *Selector) EventsRenderer() Renderer {
	if s.flags.Verbose {
		return s.renderVerbose
	}
	return s.renderDefault
}

func (s *Selector) renderVerbose(events []Event) {
	for _, e := range events {
		out, err := e.JSON()
		if err != nil {
			s.logger.Error("cannot render event", "error", err)
			continue
		}
		s.logger.Info(out)
	}
}

func (s *Selector) renderDefault(events []Event) {
	for _, e := range events {
		s.logger.Info(s.prefix(e))
	}
}
