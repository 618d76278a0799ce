package util

import (
	"sync"
)

var (
	globalLogger *Logger
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. Until it is called the Log* helpers are no-ops.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	l, err := NewLogger(logLevel, logFile, debugToConsole)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger replaces the global logger; nil disables logging
func SetLogger(l *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	globalLogger = l
}

func current() *Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// ForComponent returns a logger that tags every entry with a component field.
func ForComponent(name string) *ComponentLogger {
	return &ComponentLogger{component: name}
}

// ComponentLogger resolves the global logger lazily so package-level
// component loggers keep working after InitLogger runs.
type ComponentLogger struct {
	component string
}

func (c *ComponentLogger) logger() *Logger {
	l := current()
	if l == nil {
		return nil
	}
	return l.With(F("component", c.component))
}

func (c *ComponentLogger) Debug(msg string, fields ...Field) {
	if l := c.logger(); l != nil {
		l.Debug(msg, fields...)
	}
}

func (c *ComponentLogger) Info(msg string, fields ...Field) {
	if l := c.logger(); l != nil {
		l.Info(msg, fields...)
	}
}

func (c *ComponentLogger) Warn(msg string, fields ...Field) {
	if l := c.logger(); l != nil {
		l.Warn(msg, fields...)
	}
}

func (c *ComponentLogger) Error(msg string, fields ...Field) {
	if l := c.logger(); l != nil {
		l.Error(msg, fields...)
	}
}

func LogInfo(msg string) {
	if l := current(); l != nil {
		l.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebug(msg string) {
	if l := current(); l != nil {
		l.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}
