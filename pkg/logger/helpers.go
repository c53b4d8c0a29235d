package logger

import (
	"github.com/rs/zerolog"
)

// LogCandidates logs the files the locator assigned to a category
func LogCandidates(category string, paths []string) {
	GetLogger().WithFields(map[string]interface{}{
		"category": category,
		"count":    len(paths),
		"files":    paths,
	}).Info("Export files located")
}

// LogFileParsed logs a successfully parsed export file
func LogFileParsed(path, shape string, usernames, skipped int) {
	GetLogger().InfoWithFields("Export file parsed", map[string]interface{}{
		"file":      path,
		"shape":     shape,
		"usernames": usernames,
		"skipped":   skipped,
	})
}

// LogFileSkipped logs an export file that could not be parsed
func LogFileSkipped(path string, err error) {
	GetLogger().WithError(err).WithField("file", path).Warn("Skipping unreadable export file")
}

// LogSetSizes logs the sizes of the loaded and derived sets
func LogSetSizes(metrics map[string]interface{}) {
	fields := map[string]interface{}{
		"type": "sets",
	}
	for k, v := range metrics {
		fields[k] = v
	}
	GetLogger().InfoWithFields("Set sizes", fields)
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
