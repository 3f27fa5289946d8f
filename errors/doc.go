// Package errors provides a structured error taxonomy for taskkit. It
// defines error codes and categories that keep configuration mistakes,
// command line misuse, task execution failures, and internal faults
// distinguishable across the task and cli packages.
//
// # Error Categories
//
// Errors are classified into four categories:
//
//   - Config: programmer errors (malformed command trees, unsupported merge
//     sources). Never recovered; they surface immediately.
//   - Usage: bad command line input (unknown command, missing argument).
//   - Execution: task business-logic failures. Recoverable by default; a
//     failed task captures the error on its result instead of escaping.
//   - Internal: unexpected errors indicating bugs (including recovered
//     panics).
//
// # Usage
//
// Create a new error:
//
//	err := errors.InvalidConfig("entry sets neither Task nor Command")
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "building command tree")
//
// Check if an error is recoverable:
//
//	if errors.IsRecoverable(err) {
//	    // capture on the task result
//	}
//
// # JSON Serialization
//
// Errors marshal to and from JSON so task results can be serialized:
//
//	data, err := json.Marshal(taskErr)
package errors
