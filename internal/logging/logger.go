// Package logging provides the logging abstraction used by the rewriter, the
// batch processor and the command handlers. Components receive a Logger through
// their constructors and never talk to logrus directly.
package logging

import "io"

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With* return a derived logger; the receiver is left unchanged.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Discard returns a Logger that writes nothing. It is the default for
// library callers that pass no logger.
func Discard() Logger {
	return NewLogrusAdapterTo(io.Discard, "panic", "text")
}
