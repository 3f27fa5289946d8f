package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error
// chain. If err is nil, Wrap returns nil.
// If err is already a TaskError, its code, category, and metadata are
// preserved. Otherwise, an Internal error wrapping the original is created.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	// If it's already a TaskError, preserve its properties
	var taskErr *Error
	if errors.As(err, &taskErr) {
		wrapped := &Error{
			code:        taskErr.code,
			category:    taskErr.category,
			message:     message,
			cause:       err,
			metadata:    taskErr.Metadata(),
			recoverable: taskErr.recoverable,
			taskName:    taskErr.taskName,
			command:     taskErr.command,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	// Default to internal error for unknown errors
	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// AsTaskError attempts to extract a TaskError from an error chain.
// Returns nil if no TaskError is found.
func AsTaskError(err error) TaskError {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr
	}
	return nil
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr.code == code
	}
	return false
}

// IsCategory checks if any error in the chain has the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr.category == category
	}
	return false
}

// IsRecoverable checks if the error is recoverable.
// Plain errors default to recoverable: an unclassified error from a task's
// Perform is an execution failure, not a programmer error.
func IsRecoverable(err error) bool {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr.Recoverable()
	}
	return true
}

// IsConfig checks if the error is a configuration error.
func IsConfig(err error) bool {
	return IsCategory(err, CategoryConfig)
}

// IsUsage checks if the error is a command line usage error.
func IsUsage(err error) bool {
	return IsCategory(err, CategoryUsage)
}

// IsExecution checks if the error is a task execution error.
func IsExecution(err error) bool {
	return IsCategory(err, CategoryExecution)
}

// IsInternal checks if the error is an internal error.
func IsInternal(err error) bool {
	return IsCategory(err, CategoryInternal)
}

// Code extracts the error code from an error, if available.
// Returns empty string if err is not a TaskError.
func Code(err error) ErrorCode {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr.code
	}
	return ""
}

// Category extracts the error category from an error, if available.
// Returns empty string if err is not a TaskError.
func Category(err error) ErrorCategory {
	var taskErr *Error
	if errors.As(err, &taskErr) {
		return taskErr.category
	}
	return ""
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}

// Join combines multiple errors into a single error.
// If all errors are nil, returns nil.
// Uses errors.Join from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// RecoverPanic converts a recovered panic value into an Error.
func RecoverPanic(recovered interface{}) *Error {
	if recovered == nil {
		return nil
	}
	var message string
	switch v := recovered.(type) {
	case error:
		message = v.Error()
	case string:
		message = v
	default:
		message = fmt.Sprintf("%v", v)
	}
	return New(ErrCodePanic, message, WithMetadata("panic_value", fmt.Sprintf("%T", recovered)))
}
