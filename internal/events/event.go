package events

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Event types set by the manager in the "type" field.
const (
	TypeEvent = "cloudify_event"
	TypeLog   = "cloudify_log"
)

// Indicators printed after the timestamp.
const (
	IndicatorEvent = "CFY"
	IndicatorLog   = "LOG"
)

// Event is a single event or log record as received from the manager.
type Event map[string]any

// Parts holds the pieces of an event's one-line message.
type Parts struct {
	Timestamp  string
	Indicator  string
	Deployment string
	Operation  string // "node_id.operation", empty when not bound to a node
	Level      string // upper-cased, log records only
	EventType  string // workflow events only
	Text       string
}

// IsLog reports whether e is a log record rather than a workflow event.
func (e Event) IsLog() bool {
	return e.str("type") == TypeLog
}

// Parts extracts the message parts of e. Missing or mistyped fields are
// returned as empty strings.
func (e Event) Parts() Parts {
	ctx := e.object("context")
	msg := e.object("message")

	p := Parts{
		Timestamp:  trimFraction(e.firstStr("timestamp", "@timestamp", "reported_timestamp")),
		Indicator:  IndicatorEvent,
		Deployment: ctx.str("deployment_id"),
		Text:       msg.str("text"),
	}

	if node := ctx.str("node_id"); node != "" {
		p.Operation = node
		if op := ctx.str("operation"); op != "" {
			p.Operation += "." + op[strings.LastIndex(op, ".")+1:]
		}
	}

	if e.IsLog() {
		p.Indicator = IndicatorLog
		p.Level = strings.ToUpper(e.firstStr("level", "logger_level"))
		if p.Level == "" {
			p.Level = strings.ToUpper(e.object("logger").str("level"))
		}
	} else {
		p.EventType = e.str("event_type")
		if p.EventType == "" {
			p.EventType = e.str("event_name")
		}
	}
	return p
}

// MessagePrefix returns the plain one-line message for e:
//
//	<timestamp> <CFY|LOG> <<deployment_id>> [<node_id>.<op>] <text>
//
// Log records put the level before the text, workflow events the quoted
// event type.
func MessagePrefix(e Event) string {
	return PlainFormatter{}.Format(e)
}

// JSON returns e as indented JSON, four spaces per level. HTML characters
// are not escaped.
func (e Event) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]any(e)); err != nil {
		return "", errors.Wrap(err, "encoding event")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode reads events from r. The input is either a JSON array of objects
// or a stream of objects (for example one per line). Numbers keep their
// original text. Empty input yields no events.
func Decode(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading events")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '[' {
		var events []Event
		if err := dec.Decode(&events); err != nil {
			return nil, errors.Wrap(err, "decoding event list")
		}
		return events, nil
	}

	var events []Event
	for {
		var e Event
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding event %d", len(events))
		}
		events = append(events, e)
	}
}

func (e Event) str(key string) string {
	switch v := e[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (e Event) firstStr(keys ...string) string {
	for _, k := range keys {
		if s := e.str(k); s != "" {
			return s
		}
	}
	return ""
}

func (e Event) object(key string) Event {
	if m, ok := e[key].(map[string]any); ok {
		return m
	}
	if m, ok := e[key].(Event); ok {
		return m
	}
	return nil
}

// trimFraction drops fractional seconds and any zone suffix that follows
// them, and prints the date and time separated by a space.
func trimFraction(ts string) string {
	if i := strings.IndexByte(ts, '.'); i >= 0 {
		ts = ts[:i]
	}
	return strings.Replace(ts, "T", " ", 1)
}
