package errors

// ErrorCategory classifies errors by their nature and recovery semantics.
type ErrorCategory string

// Error categories define how errors should be handled.
const (
	// CategoryConfig indicates a programmer error in task or command tree
	// configuration. Examples: malformed tree entry, unsupported merge source.
	CategoryConfig ErrorCategory = "config"

	// CategoryUsage indicates bad command line input from the user.
	// Examples: unknown subcommand, missing positional argument.
	CategoryUsage ErrorCategory = "usage"

	// CategoryExecution indicates a task's business logic failed.
	// Examples: missing input file, downstream command exited non-zero.
	CategoryExecution ErrorCategory = "execution"

	// CategoryInternal indicates unexpected errors, bugs, or panics.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRecoverable returns true if errors in this category may be captured on
// a task result instead of escaping to the caller.
func (c ErrorCategory) IsRecoverable() bool {
	switch c {
	case CategoryUsage, CategoryExecution:
		return true
	default:
		return false
	}
}

// ErrorCode identifies specific error types within categories.
type ErrorCode string

// Error codes for common failure scenarios.
const (
	// Config errors
	ErrCodeInvalidConfig     ErrorCode = "INVALID_CONFIG"     // Malformed command tree entry
	ErrCodeMissingCommand    ErrorCode = "MISSING_COMMAND"    // Task without command name or description
	ErrCodeDuplicateCommand  ErrorCode = "DUPLICATE_COMMAND"  // Label or alias registered twice
	ErrCodeUnsupportedSource ErrorCode = "UNSUPPORTED_SOURCE" // Merge source shape not supported
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"      // Malformed or invalid input

	// Usage errors
	ErrCodeUnknownCommand  ErrorCode = "UNKNOWN_COMMAND"  // Subcommand label not registered
	ErrCodeUnknownArgument ErrorCode = "UNKNOWN_ARGUMENT" // Option not defined on parser
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT" // Required positional not supplied
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT" // Option value failed to parse
	ErrCodeHelpRequested   ErrorCode = "HELP_REQUESTED"   // --help/-h was given

	// Execution errors
	ErrCodeTaskFailed ErrorCode = "TASK_FAILED" // Task execution failed

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL" // Unexpected internal error
	ErrCodePanic    ErrorCode = "PANIC"    // Recovered from panic
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeInvalidConfig, ErrCodeMissingCommand, ErrCodeDuplicateCommand,
		ErrCodeUnsupportedSource, ErrCodeInvalidInput:
		return CategoryConfig

	case ErrCodeUnknownCommand, ErrCodeUnknownArgument, ErrCodeMissingArgument,
		ErrCodeInvalidArgument, ErrCodeHelpRequested:
		return CategoryUsage

	case ErrCodeTaskFailed:
		return CategoryExecution

	case ErrCodeInternal, ErrCodePanic:
		return CategoryInternal

	default:
		return CategoryInternal
	}
}

// DefaultRecoverable returns whether this error code is recoverable by default.
func (c ErrorCode) DefaultRecoverable() bool {
	return c.DefaultCategory().IsRecoverable()
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[ErrorCode]string{
	ErrCodeInvalidConfig:     "invalid command tree configuration",
	ErrCodeMissingCommand:    "command name and description must be set",
	ErrCodeDuplicateCommand:  "command label already registered",
	ErrCodeUnsupportedSource: "merge source type not supported",
	ErrCodeInvalidInput:      "invalid input provided",
	ErrCodeUnknownCommand:    "unknown command",
	ErrCodeUnknownArgument:   "unknown argument",
	ErrCodeMissingArgument:   "missing required argument",
	ErrCodeInvalidArgument:   "invalid argument value",
	ErrCodeHelpRequested:     "help requested",
	ErrCodeTaskFailed:        "task execution failed",
	ErrCodeInternal:          "internal error",
	ErrCodePanic:             "recovered from panic",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
