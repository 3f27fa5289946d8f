package task

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libcommon/taskkit/errors"
	"github.com/libcommon/taskkit/logging"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusPending indicates the task has not been run yet.
	StatusPending Status = "pending"

	// StatusRunning indicates the task is between preamble and postamble.
	StatusRunning Status = "running"

	// StatusSucceeded indicates Perform completed without error.
	StatusSucceeded Status = "succeeded"

	// StatusFailed indicates Perform returned an error or panicked.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Task is a unit of work. Concrete tasks embed Base and implement Perform;
// the remaining methods have usable defaults on Base.
type Task interface {
	FieldProvider

	// ExcludeFromMerge lists field names that Merge must never change on
	// this task, regardless of caller-supplied filters.
	ExcludeFromMerge() []string

	// Result returns the task's result record. Never nil.
	Result() Result

	// PropagateErrors reports whether Run returns Perform's error to the
	// caller instead of capturing it on the result.
	PropagateErrors() bool

	// Preamble runs setup before Perform. Must not fail; it has no error
	// return because it runs unconditionally.
	Preamble()

	// Perform does the work. Record output on Result.
	Perform() error

	// Postamble runs cleanup after Perform, on success and failure alike.
	// Must not fail.
	Postamble()

	// Status reports the task's lifecycle state.
	Status() Status

	setStatus(Status)
}

// Base supplies default Task behavior. Embed it in every concrete task.
type Base struct {
	// Propagate makes Run return Perform's error to the caller instead of
	// capturing it on the result.
	Propagate bool

	status Status
	result Result
}

// MergeFields returns no fields; concrete tasks override it to declare
// their own.
func (b *Base) MergeFields() []Field {
	return nil
}

// ExcludeFromMerge returns no names; concrete tasks override it to protect
// fields from merging.
func (b *Base) ExcludeFromMerge() []string {
	return nil
}

// Result returns the task's result record, allocating a BaseResult on
// first use so it is never nil.
func (b *Base) Result() Result {
	if b.result == nil {
		b.result = NewResult()
	}
	return b.result
}

// SetResult installs a domain-specific result record. Call it from the
// task's constructor, before the task runs.
func (b *Base) SetResult(r Result) {
	b.result = r
}

// PropagateErrors reports the Propagate flag.
func (b *Base) PropagateErrors() bool {
	return b.Propagate
}

// Preamble is a no-op.
func (b *Base) Preamble() {}

// Postamble is a no-op.
func (b *Base) Postamble() {}

// Status reports the task's lifecycle state.
func (b *Base) Status() Status {
	if b.status == "" {
		return StatusPending
	}
	return b.status
}

func (b *Base) setStatus(s Status) {
	b.status = s
}

// Name returns the task's type name, without package qualifier, for use in
// logs and errors.
func Name(t Task) string {
	name := fmt.Sprintf("%T", t)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}

var (
	loggerMu sync.RWMutex
	logger   = logging.New().WithComponent("task")
)

// SetLogger replaces the logger used by Run and Merge. Passing nil
// silences logging.
func SetLogger(l *logging.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = logging.New()
		l.SetOutput(io.Discard)
	}
	logger = l
}

func activeLogger() *logging.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Run executes the task lifecycle: preamble, perform, postamble. Each run
// is assigned a fresh run ID, recorded on the result and used as the log
// trace ID.
//
// An error from Perform is captured on the result and Run returns a nil
// error, unless the task propagates errors, in which case Run returns the
// error after the postamble has run. The returned Result is never nil.
func Run(t Task) (Result, error) {
	name := Name(t)
	runID := uuid.NewString()
	log := activeLogger().WithTraceID(runID)

	res := t.Result()
	if r, ok := res.(interface{ setRunID(string) }); ok {
		r.setRunID(runID)
	}

	log.TaskStart(name)
	start := time.Now()
	t.setStatus(StatusRunning)
	t.Preamble()

	err := perform(t)
	if err != nil {
		// Captured before the postamble so cleanup can inspect it.
		res.SetErr(err)
		t.setStatus(StatusFailed)
		if t.PropagateErrors() {
			t.Postamble()
			return res, err
		}
		log.TaskFailed(name, err)
		t.Postamble()
		return res, nil
	}

	t.setStatus(StatusSucceeded)
	log.TaskComplete(name, time.Since(start))
	t.Postamble()
	return res, nil
}

// perform invokes Perform, converting a panic into a structured error so
// the postamble contract holds even for programmer mistakes.
func perform(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.RecoverPanic(r)
		}
	}()
	return t.Perform()
}
