// Package logger provides structured logging for igfollowcheck.
//
// It wraps zerolog behind a small Logger interface with field helpers and a
// global instance. Console output goes to stderr so that stdout only carries
// the result summary; an optional log file receives the same events.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("file", path).Warn("Skipping unreadable export file")
//
// Tests can swap the global logger with SetLogger(NewTestLogger()) and assert
// on the captured messages.
package logger
