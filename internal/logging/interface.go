package logging

import (
	"github.com/charmbracelet/log"
)

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// DefaultLoggerWrapper adapts a charmbracelet logger to LoggerInterface.
// A nil logger resolves to the global logger on every call. Reported callers
// skip the wrapper methods.
type DefaultLoggerWrapper struct {
	logger *log.Logger
}

// NewDefaultLoggerWrapper creates a new default logger wrapper.
func NewDefaultLoggerWrapper() LoggerInterface {
	return &DefaultLoggerWrapper{}
}

func (l *DefaultLoggerWrapper) get() *log.Logger {
	if l.logger != nil {
		return l.logger
	}
	return GetLogger()
}

func (l *DefaultLoggerWrapper) Debug(msg string, keysAndValues ...interface{}) {
	lg := l.get()
	lg.Helper()
	lg.Debug(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Info(msg string, keysAndValues ...interface{}) {
	lg := l.get()
	lg.Helper()
	lg.Info(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Warn(msg string, keysAndValues ...interface{}) {
	lg := l.get()
	lg.Helper()
	lg.Warn(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Error(msg string, keysAndValues ...interface{}) {
	lg := l.get()
	lg.Helper()
	lg.Error(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) With(keysAndValues ...interface{}) LoggerInterface {
	return &DefaultLoggerWrapper{logger: l.get().With(keysAndValues...)}
}
