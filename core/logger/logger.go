package logger

// Logger exposes leveled logging to the engine and its adapters without
// binding them to a concrete backend.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a debug message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
