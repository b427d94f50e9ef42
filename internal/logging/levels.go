package logging

import (
	"log/slog"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	cfyerrors "github.com/thoreinstein/cfy/internal/errors"
)

// Levels beyond the four slog defines.
const (
	// LevelTrace is below Debug and is only reachable through -vvv.
	LevelTrace = slog.Level(-8)

	// LevelCritical is the most severe level, above Error.
	LevelCritical = slog.Level(12)

	// levelAll lets every record through; used for handlers with no level.
	levelAll = slog.Level(math.MinInt)
)

// levelNames maps the standard severity names to slog levels.
// NOTSET means "log everything"; TRACE is the name LevelName reports for it.
var levelNames = map[string]slog.Level{
	"CRITICAL": LevelCritical,
	"FATAL":    LevelCritical,
	"ERROR":    slog.LevelError,
	"WARNING":  slog.LevelWarn,
	"WARN":     slog.LevelWarn,
	"INFO":     slog.LevelInfo,
	"DEBUG":    slog.LevelDebug,
	"NOTSET":   LevelTrace,
	"TRACE":    LevelTrace,
}

// ParseLevel resolves a severity name case-insensitively.
// Unknown names return an error matching ErrUnknownLevel.
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.WithHint(errors.Wrapf(cfyerrors.ErrUnknownLevel, "%q", name),
			"Valid levels: DEBUG, INFO, WARNING, ERROR, CRITICAL, NOTSET")
	}
	return level, nil
}

// LevelName returns the standard name of level. Levels between the named
// ones are reported as the nearest name below them.
func LevelName(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	case level >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

// LevelFromVerbosity maps a -v count to a level: none is Warn, -v is Info,
// -vv is Debug and anything beyond is Trace.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
