package logger

import (
	"os"
	"sync/atomic"
)

// LevelEnv names the environment variable setting the level of the
// package default logger.
const LevelEnv = "MINITEL_LOG_LEVEL"

type holder struct{ Logger }

var defLogger atomic.Pointer[holder]

func init() {
	defLogger.Store(&holder{NewSlog(envLevel(), false)})
}

// envLevel returns the level named by LevelEnv, info when unset or unknown.
func envLevel() LogLevel {
	level, ok := ParseLevel(os.Getenv(LevelEnv))
	if !ok {
		return InfoLevel
	}

	return level
}

func current() Logger {
	return defLogger.Load().Logger
}

func Debug(msg string, keysAndValues ...any) {
	current().Debug(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	current().Info(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	current().Warn(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	current().Error(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	current().Fatal(msg, keysAndValues...)
}

func SetLevel(level LogLevel) {
	current().SetLevel(level)
}

// GetLogger returns the package default logger. Links and serial lines
// created without a logger use it.
func GetLogger() Logger {
	return current()
}

// SetLogger replaces the package default logger and returns the previous
// one. A nil logger is ignored. It is safe to call while links are
// logging.
func SetLogger(l Logger) Logger {
	if l == nil {
		return current()
	}

	return defLogger.Swap(&holder{l}).Logger
}

func With(keyValues ...any) Logger {
	return current().With(keyValues...)
}
