package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the different failure classes of a check run
type ErrorType string

const (
	ErrorTypeDataNotFound ErrorType = "data_not_found"
	ErrorTypeParsing      ErrorType = "parsing"
	ErrorTypeWrite        ErrorType = "write"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// Exit codes returned by the CLI for each error type
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitDataNotFound = 2
	ExitNoValidJSON  = 3
	ExitWrite        = 4
)

// Error represents a typed failure, optionally tied to a file path
type Error struct {
	Type    ErrorType
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s error: %s: %s", e.Type, e.Path, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewDataNotFound reports that no usable export data was located
func NewDataNotFound(path, message string) *Error {
	return &Error{Type: ErrorTypeDataNotFound, Path: path, Message: message}
}

// NewParse reports a file that could not be decoded
func NewParse(path, message string, err error) *Error {
	return &Error{Type: ErrorTypeParsing, Path: path, Message: message, Err: err}
}

// NewWrite reports an output file that could not be written
func NewWrite(path, message string, err error) *Error {
	return &Error{Type: ErrorTypeWrite, Path: path, Message: message, Err: err}
}

// NewConfig reports an invalid configuration or flag combination
func NewConfig(message string, err error) *Error {
	return &Error{Type: ErrorTypeConfig, Message: message, Err: err}
}

// TypeOf returns the type of the first *Error in err's chain
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType checks whether err carries the given error type
func IsType(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch TypeOf(err) {
	case ErrorTypeDataNotFound:
		return ExitDataNotFound
	case ErrorTypeParsing:
		return ExitNoValidJSON
	case ErrorTypeWrite:
		return ExitWrite
	default:
		return ExitUsage
	}
}
