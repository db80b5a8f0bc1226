// Package logging provides a logging abstraction layer that decouples the application
// from specific logging frameworks.
package logging

// Logger defines the interface for structured logging throughout the application.
// Implementations must be safe for concurrent use; the dispatcher logs from
// many goroutines.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Component returns a Field tagging log lines with the emitting component.
func Component(name string) Field {
	return Field{Key: FieldComponent, Value: name}
}
