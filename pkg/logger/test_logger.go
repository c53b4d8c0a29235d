package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger captures log messages so tests can assert on them
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	zerolog  *zerolog.Logger
}

// LogMessage represents a captured log message
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	nop := zerolog.Nop()
	return &TestLogger{zerolog: &nop}
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogMessage{Level: level, Message: msg, Fields: fields})
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &scopedTestLogger{root: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return (&scopedTestLogger{root: l}).WithFields(fields)
}

func (l *TestLogger) WithError(err error) Logger {
	return (&scopedTestLogger{root: l}).WithError(err)
}

func (l *TestLogger) GetZerolog() *zerolog.Logger {
	return l.zerolog
}

// GetMessages returns a copy of all captured log messages
func (l *TestLogger) GetMessages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]LogMessage, len(l.messages))
	copy(messages, l.messages)
	return messages
}

// GetMessagesByLevel returns all messages of a specific level
func (l *TestLogger) GetMessagesByLevel(level string) []LogMessage {
	var filtered []LogMessage
	for _, msg := range l.GetMessages() {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// HasMessage checks if a message with the given text was logged
func (l *TestLogger) HasMessage(text string) bool {
	for _, msg := range l.GetMessages() {
		if msg.Message == text {
			return true
		}
	}
	return false
}

// String renders the captured messages, one per line
func (l *TestLogger) String() string {
	var b strings.Builder
	for _, msg := range l.GetMessages() {
		fmt.Fprintf(&b, "[%s] %s", msg.Level, msg.Message)
		if len(msg.Fields) > 0 {
			fmt.Fprintf(&b, " fields=%v", msg.Fields)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// scopedTestLogger carries fields added with WithField/WithError
type scopedTestLogger struct {
	root   *TestLogger
	fields map[string]interface{}
}

func (s *scopedTestLogger) merged(extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(s.fields)+len(extra))
	for k, v := range s.fields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (s *scopedTestLogger) Debug(msg string) { s.root.record("DEBUG", msg, s.merged(nil)) }
func (s *scopedTestLogger) Info(msg string)  { s.root.record("INFO", msg, s.merged(nil)) }
func (s *scopedTestLogger) Warn(msg string)  { s.root.record("WARN", msg, s.merged(nil)) }
func (s *scopedTestLogger) Error(msg string) { s.root.record("ERROR", msg, s.merged(nil)) }

func (s *scopedTestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	s.root.record("DEBUG", msg, s.merged(fields))
}

func (s *scopedTestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	s.root.record("INFO", msg, s.merged(fields))
}

func (s *scopedTestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	s.root.record("WARN", msg, s.merged(fields))
}

func (s *scopedTestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	s.root.record("ERROR", msg, s.merged(fields))
}

func (s *scopedTestLogger) WithField(key string, value interface{}) Logger {
	return &scopedTestLogger{root: s.root, fields: s.merged(map[string]interface{}{key: value})}
}

func (s *scopedTestLogger) WithFields(fields map[string]interface{}) Logger {
	return &scopedTestLogger{root: s.root, fields: s.merged(fields)}
}

func (s *scopedTestLogger) WithError(err error) Logger {
	if err == nil {
		return s
	}
	return s.WithField("error", err.Error())
}

func (s *scopedTestLogger) GetZerolog() *zerolog.Logger {
	return s.root.zerolog
}
