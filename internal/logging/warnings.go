package logging

import (
	"bytes"
	"log"
	"log/slog"
	"sync"
)

// onceWriter forwards each distinct line written to it to a logger at WARN,
// exactly once. It is installed as the output of the standard library's log
// package so platform warnings from net/http and crypto/tls don't repeat on
// every request.
type onceWriter struct {
	logger func() *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

func newOnceWriter(logger func() *slog.Logger) *onceWriter {
	return &onceWriter{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

func (w *onceWriter) Write(p []byte) (int, error) {
	for line := range bytes.Lines(p) {
		msg := string(bytes.TrimRight(line, "\r\n"))
		if msg == "" {
			continue
		}

		w.mu.Lock()
		_, dup := w.seen[msg]
		w.seen[msg] = struct{}{}
		w.mu.Unlock()

		if !dup {
			w.logger().Warn(msg)
		}
	}
	return len(p), nil
}

// suppressRepeatedWarnings routes the standard log package through a
// onceWriter feeding the named logger of r.
func suppressRepeatedWarnings(r *Registry) {
	w := newOnceWriter(func() *slog.Logger { return r.Logger(MainLoggerName) })
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(w)
}
