// Package task provides composable units of work with a fixed lifecycle,
// declarative field merging, and sequential piping.
//
// A task is a struct that embeds Base, declares its mergeable fields, and
// implements Perform. Run drives the lifecycle:
//
//	Pending → Running → (Succeeded | Failed)
//
// with the Preamble hook before Perform and the Postamble hook after it.
// The postamble always runs, on success and failure alike, so cleanup is
// never skipped.
//
// # Basic Usage
//
// Declare a task and run it:
//
//	type CountLinesTask struct {
//	    task.Base
//	    InputPath string
//	}
//
//	func (t *CountLinesTask) MergeFields() []task.Field {
//	    return []task.Field{task.String("input_path", &t.InputPath)}
//	}
//
//	func (t *CountLinesTask) Perform() error {
//	    // count lines, record output on t.Result()
//	    return nil
//	}
//
//	res, err := task.Run(&CountLinesTask{InputPath: "notes.txt"})
//
// # Error Capture
//
// By default an error returned from Perform is captured on the result and
// Run returns a nil error; the caller inspects res.Err(). Setting
// Base.Propagate makes Run return the error instead. Either way the
// postamble runs first.
//
// # Merging
//
// Merge copies selected field values from a source onto a task. Sources are
// plain mappings, parsed argument bags, other tasks, or results. Include,
// Exclude, and Overwrite options control which fields propagate; see Merge.
//
// # Piping
//
// Pipe seeds a task with the fields of a prior result and runs it, and
// Chain strings tasks together left to right:
//
//	res, err := task.Chain(&ExtractTask{}, &TransformTask{}, &LoadTask{})
//
// # Thread Safety
//
// A task instance is not safe for concurrent use. Each run is independent
// and synchronous; nothing in this package spawns goroutines.
package task
