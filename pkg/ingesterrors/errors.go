// Package ingesterrors provides the structured error taxonomy of the
// ingestion core: caller errors, row errors, cancellation, backend errors,
// and startup-fatal errors, each carrying details and a captured stack.
package ingesterrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType categorizes an Error.
type ErrorType string

const (
	// ErrorTypeCaller covers bad column lists, unsupported declared
	// types, and dict schema collisions. Surfaced as an error dataset;
	// the call itself returns normally.
	ErrorTypeCaller ErrorType = "caller"
	// ErrorTypeRow covers a value failing its type check, integer
	// overflow, or a missing required dict key. Handled locally by
	// quarantining; never reaches this taxonomy as a returned error.
	ErrorTypeRow ErrorType = "row"
	// ErrorTypeCancelled covers an observed interrupt.
	ErrorTypeCancelled ErrorType = "cancelled"
	// ErrorTypeBackend covers an exception surfaced from the backend
	// context or driver.
	ErrorTypeBackend ErrorType = "backend"
	// ErrorTypeStartupFatal covers a missing runtime library; raised as
	// a host-runtime exception rather than an error dataset.
	ErrorTypeStartupFatal ErrorType = "startup_fatal"
)

// Error is the ingestion core's structured error type.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]any
	Stack   []StackFrame
}

// StackFrame is a single call-stack entry captured at error creation.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail attaches a key-value detail and returns the receiver for
// chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error, capturing the call stack at the creation point.
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message, Stack: captureStack(2)}
}

// Wrap wraps err with additional context, preserving an existing Error's
// stack if present. Returns nil if err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Type: errType, Message: message, Cause: err, Stack: existing.Stack}
	}
	return &Error{Type: errType, Message: message, Cause: err, Stack: captureStack(2)}
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)
	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		frames = append(frames, StackFrame{Function: fn.Name(), File: file, Line: line})
	}
	return frames
}
