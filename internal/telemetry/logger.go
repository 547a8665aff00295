// Package telemetry provides an optional file-backed session observer.
package telemetry

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/thavelick/just-type-it/internal/session"
)

// Logger records session events to a log file. It implements
// session.Observer; the core stays side-effect-free without it.
type Logger struct {
	logger *log.Logger
	file   *os.File
}

// NewLogger opens (or creates) the log file at path in append mode.
func NewLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return &Logger{logger: logger, file: f}, nil
}

// Keystroke implements session.Observer.
func (l *Logger) Keystroke(key session.Key, correct bool, position int) {
	l.logger.Debug("keystroke",
		"kind", kindName(key.Kind),
		"rune", string(key.Rune),
		"correct", correct,
		"position", position,
	)
}

// WordMistyped implements session.Observer.
func (l *Logger) WordMistyped(word string) {
	l.logger.Info("mistyped word", "word", word)
}

// SessionEnded implements session.Observer.
func (l *Logger) SessionEnded(completed bool, position int) {
	l.logger.Info("session ended", "completed", completed, "position", position)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	return l.file.Close()
}

func kindName(kind session.Kind) string {
	switch kind {
	case session.KindRune:
		return "rune"
	case session.KindBackspace:
		return "backspace"
	case session.KindEnter:
		return "enter"
	case session.KindCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
