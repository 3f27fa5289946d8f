package task

// Result is the outcome record of running a task. Domain-specific result
// types embed BaseResult and extend MergeFields with their output fields so
// a later task in a pipeline can absorb them.
type Result interface {
	FieldProvider

	// Err returns the error captured during the run, if any.
	Err() error

	// SetErr records the error captured during the run.
	SetErr(error)
}

// BaseResult is the default Result implementation.
type BaseResult struct {
	err   error
	runID string
}

// NewResult creates an empty BaseResult.
func NewResult() *BaseResult {
	return &BaseResult{}
}

// Err returns the captured error, if any.
func (r *BaseResult) Err() error {
	return r.err
}

// SetErr records the captured error.
func (r *BaseResult) SetErr(err error) {
	r.err = err
}

// RunID returns the identifier assigned to the run that produced this
// result. Empty until the task has been run.
func (r *BaseResult) RunID() string {
	return r.runID
}

func (r *BaseResult) setRunID(id string) {
	r.runID = id
}

// MergeFields exposes the captured error under the name "err".
func (r *BaseResult) MergeFields() []Field {
	return []Field{Bind("err", &r.err)}
}
