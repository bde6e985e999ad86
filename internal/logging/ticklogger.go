package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// TickLogger adapts zerolog.Logger to the snapshot.Logger interface.
// Disabled levels return before the key-value fields are built.
type TickLogger struct {
	logger zerolog.Logger
}

// NewTickLogger creates a new TickLogger wrapping a zerolog.Logger.
func NewTickLogger(logger zerolog.Logger) *TickLogger {
	return &TickLogger{logger: logger}
}

// NewZerolog builds a zerolog.Logger writing JSON lines to w at the given
// level, tagged with component.
func NewZerolog(w io.Writer, level, component string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(zerologLevel(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
}

// NewTextZerolog is NewZerolog with key=value text lines, for sharing a
// file with the slog text handler.
func NewTextZerolog(w io.Writer, level, component string) zerolog.Logger {
	return NewZerolog(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}, level, component)
}

func zerologLevel(level string) string {
	switch parseLevel(level).String() {
	case "DEBUG":
		return "debug"
	case "WARN":
		return "warn"
	case "ERROR":
		return "error"
	default:
		return "info"
	}
}

// Debug logs a debug message with optional key-value pairs.
func (l *TickLogger) Debug(msg string, keysAndValues ...any) {
	emit(l.logger.Debug(), msg, keysAndValues)
}

// Info logs an info message with optional key-value pairs.
func (l *TickLogger) Info(msg string, keysAndValues ...any) {
	emit(l.logger.Info(), msg, keysAndValues)
}

// Error logs an error message with optional key-value pairs.
func (l *TickLogger) Error(msg string, keysAndValues ...any) {
	emit(l.logger.Error(), msg, keysAndValues)
}

func emit(e *zerolog.Event, msg string, keysAndValues []any) {
	if !e.Enabled() {
		return
	}
	if len(keysAndValues) > 0 {
		e = e.Fields(toFields(keysAndValues))
	}
	e.Msg(msg)
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
