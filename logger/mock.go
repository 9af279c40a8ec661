package logger

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock implementing Logger. Besides the mock
// expectations it keeps the messages logged at each level, so tests can
// check what a link reported without registering every call up front.
type MockLogger struct {
	mock.Mock

	mu     sync.Mutex
	logged map[LogLevel][]string
}

var _ Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{logged: make(map[LogLevel][]string)}
}

// AllowAll registers permissive expectations for every log level and
// returns m for chaining.
func (m *MockLogger) AllowAll() *MockLogger {
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(method, mock.Anything, mock.Anything).Return()
	}

	return m
}

// Messages returns the messages logged at level, oldest first.
func (m *MockLogger) Messages(level LogLevel) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string{}, m.logged[level]...)
}

func (m *MockLogger) record(level LogLevel, msg string, keysAndValues []any) {
	m.mu.Lock()
	m.logged[level] = append(m.logged[level], msg)
	m.mu.Unlock()

	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.record(DebugLevel, msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.record(InfoLevel, msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.record(WarnLevel, msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.record(ErrorLevel, msg, keysAndValues)
}

func (m *MockLogger) Fatal(msg string, keysAndValues ...any) {
	m.record(FatalLevel, msg, keysAndValues)
}

func (m *MockLogger) SetLevel(level LogLevel) {
	m.Called(level)
}

func (m *MockLogger) Level() LogLevel {
	args := m.Called()
	return args.Get(0).(LogLevel)
}

func (m *MockLogger) With(keyValues ...any) Logger {
	args := m.Called(keyValues...)
	return args.Get(0).(Logger)
}
