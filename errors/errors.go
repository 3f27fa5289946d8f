package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// TaskError is the interface for all structured errors in taskkit.
// It extends the standard error interface with context used by the task
// runner and command tree builder.
type TaskError interface {
	error

	// Code returns the specific error code identifying the failure type.
	Code() ErrorCode

	// Category returns the error category for handling decisions.
	Category() ErrorCategory

	// Recoverable returns true if the error may be captured on a task
	// result instead of escaping to the caller.
	Recoverable() bool

	// Metadata returns additional context as key-value pairs.
	Metadata() map[string]string

	// Unwrap returns the underlying error, if any.
	Unwrap() error
}

// Error is the concrete implementation of TaskError.
type Error struct {
	code        ErrorCode
	category    ErrorCategory
	message     string
	cause       error
	metadata    map[string]string
	recoverable *bool // nil means use default based on category
	timestamp   time.Time
	taskName    string // task type that produced the error, if applicable
	command     string // related command label, if applicable
}

// Ensure Error implements TaskError and json.Marshaler/Unmarshaler.
var (
	_ TaskError        = (*Error)(nil)
	_ json.Marshaler   = (*Error)(nil)
	_ json.Unmarshaler = (*Error)(nil)
)

// Error returns the error message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.category
}

// Recoverable returns whether this error is recoverable.
func (e *Error) Recoverable() bool {
	if e.recoverable != nil {
		return *e.recoverable
	}
	return e.category.IsRecoverable()
}

// Metadata returns the error metadata.
func (e *Error) Metadata() map[string]string {
	if e.metadata == nil {
		return make(map[string]string)
	}
	// Return a copy to prevent modification
	result := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		result[k] = v
	}
	return result
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Timestamp returns when the error occurred.
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// TaskName returns the task type that produced the error, if set.
func (e *Error) TaskName() string {
	return e.taskName
}

// Command returns the related command label, if set.
func (e *Error) Command() string {
	return e.command
}

// errorJSON is the JSON representation of an Error.
type errorJSON struct {
	Code        ErrorCode         `json:"code"`
	Category    ErrorCategory     `json:"category"`
	Message     string            `json:"message"`
	Cause       string            `json:"cause,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Recoverable bool              `json:"recoverable"`
	Timestamp   string            `json:"timestamp,omitempty"`
	TaskName    string            `json:"task,omitempty"`
	Command     string            `json:"command,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	j := errorJSON{
		Code:        e.code,
		Category:    e.category,
		Message:     e.message,
		Metadata:    e.metadata,
		Recoverable: e.Recoverable(),
		TaskName:    e.taskName,
		Command:     e.command,
	}
	if e.cause != nil {
		j.Cause = e.cause.Error()
	}
	if !e.timestamp.IsZero() {
		j.Timestamp = e.timestamp.Format(time.RFC3339Nano)
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Error) UnmarshalJSON(data []byte) error {
	var j errorJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	e.code = j.Code
	e.category = j.Category
	e.message = j.Message
	e.metadata = j.Metadata
	e.taskName = j.TaskName
	e.command = j.Command
	r := j.Recoverable
	e.recoverable = &r
	if j.Cause != "" {
		e.cause = fmt.Errorf("%s", j.Cause)
	}
	if j.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339Nano, j.Timestamp); err == nil {
			e.timestamp = t
		}
	}
	return nil
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithCategory overrides the default category.
func WithCategory(cat ErrorCategory) Option {
	return func(e *Error) {
		e.category = cat
	}
}

// WithRecoverable explicitly sets whether the error is recoverable.
func WithRecoverable(recoverable bool) Option {
	return func(e *Error) {
		e.recoverable = &recoverable
	}
}

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(e *Error) {
		if e.metadata == nil {
			e.metadata = make(map[string]string)
		}
		e.metadata[key] = value
	}
}

// WithMetadataMap adds multiple metadata key-value pairs.
func WithMetadataMap(m map[string]string) Option {
	return func(e *Error) {
		if e.metadata == nil {
			e.metadata = make(map[string]string)
		}
		for k, v := range m {
			e.metadata[k] = v
		}
	}
}

// WithTaskName sets the task type that produced the error.
func WithTaskName(name string) Option {
	return func(e *Error) {
		e.taskName = name
	}
}

// WithCommand sets the related command label.
func WithCommand(label string) Option {
	return func(e *Error) {
		e.command = label
	}
}

// WithTimestamp sets a custom timestamp.
func WithTimestamp(t time.Time) Option {
	return func(e *Error) {
		e.timestamp = t
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:      code,
		category:  code.DefaultCategory(),
		message:   message,
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// FromCode creates an error with the default description for the code.
func FromCode(code ErrorCode, opts ...Option) *Error {
	return New(code, code.Description(), opts...)
}

// InvalidConfig creates a command tree configuration error.
func InvalidConfig(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidConfig, message, opts...)
}

// MissingCommand creates an error for a task without a command name or
// description.
func MissingCommand(taskName string, opts ...Option) *Error {
	opts = append([]Option{WithTaskName(taskName)}, opts...)
	return New(ErrCodeMissingCommand, fmt.Sprintf("task %s must define a command name and description", taskName), opts...)
}

// DuplicateCommand creates an error for a label registered twice at the
// same tree level.
func DuplicateCommand(label string, opts ...Option) *Error {
	opts = append([]Option{WithCommand(label)}, opts...)
	return New(ErrCodeDuplicateCommand, fmt.Sprintf("command %q already registered", label), opts...)
}

// UnsupportedSource creates an error for a merge source of an unsupported
// shape.
func UnsupportedSource(message string, opts ...Option) *Error {
	return New(ErrCodeUnsupportedSource, message, opts...)
}

// InvalidInput creates an invalid input error.
func InvalidInput(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidInput, message, opts...)
}

// UnknownCommand creates an error for an unregistered subcommand label.
func UnknownCommand(label string, opts ...Option) *Error {
	opts = append([]Option{WithCommand(label)}, opts...)
	return New(ErrCodeUnknownCommand, fmt.Sprintf("unknown command %q", label), opts...)
}

// UnknownArgument creates an error for an option not defined on a parser.
func UnknownArgument(name string, opts ...Option) *Error {
	return New(ErrCodeUnknownArgument, fmt.Sprintf("unknown argument %q", name), opts...)
}

// MissingArgument creates an error for a required positional that was not
// supplied.
func MissingArgument(name string, opts ...Option) *Error {
	return New(ErrCodeMissingArgument, fmt.Sprintf("missing required argument %q", name), opts...)
}

// InvalidArgument creates an error for an option value that failed to parse.
func InvalidArgument(name, value string, opts ...Option) *Error {
	return New(ErrCodeInvalidArgument, fmt.Sprintf("invalid value %q for argument %q", value, name), opts...)
}

// TaskFailed creates a task execution error.
func TaskFailed(taskName, reason string, opts ...Option) *Error {
	opts = append([]Option{WithTaskName(taskName)}, opts...)
	return New(ErrCodeTaskFailed, fmt.Sprintf("task %s failed: %s", taskName, reason), opts...)
}

// Internal creates an internal error.
func Internal(message string, opts ...Option) *Error {
	return New(ErrCodeInternal, message, opts...)
}
