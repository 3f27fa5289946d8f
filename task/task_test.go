package task

import (
	"errors"
	"os"
	"testing"

	taskerrors "github.com/libcommon/taskkit/errors"
)

func TestMain(m *testing.M) {
	// Keep run logging out of test output.
	SetLogger(nil)
	os.Exit(m.Run())
}

// hookTask records lifecycle hook invocations in order.
type hookTask struct {
	Base
	performErr error
	panicWith  interface{}
	calls      []string
}

func (t *hookTask) Preamble() {
	t.calls = append(t.calls, "preamble")
}

func (t *hookTask) Perform() error {
	t.calls = append(t.calls, "perform")
	if t.panicWith != nil {
		panic(t.panicWith)
	}
	return t.performErr
}

func (t *hookTask) Postamble() {
	t.calls = append(t.calls, "postamble")
}

func count(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestRunSuccess(t *testing.T) {
	tk := &hookTask{}

	res, err := Run(tk)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res == nil {
		t.Fatal("Run returned nil result")
	}
	if res.Err() != nil {
		t.Errorf("result error = %v, want nil", res.Err())
	}
	if tk.Status() != StatusSucceeded {
		t.Errorf("Status() = %s, want succeeded", tk.Status())
	}

	want := []string{"preamble", "perform", "postamble"}
	if len(tk.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", tk.calls, want)
	}
	for i, c := range want {
		if tk.calls[i] != c {
			t.Errorf("calls[%d] = %s, want %s", i, tk.calls[i], c)
		}
	}
}

func TestRunCapturesError(t *testing.T) {
	boom := errors.New("boom")
	tk := &hookTask{performErr: boom}

	res, err := Run(tk)
	if err != nil {
		t.Fatalf("Run should capture the error, got: %v", err)
	}
	if res.Err() != boom {
		t.Errorf("result error = %v, want %v", res.Err(), boom)
	}
	if tk.Status() != StatusFailed {
		t.Errorf("Status() = %s, want failed", tk.Status())
	}
	if count(tk.calls, "postamble") != 1 {
		t.Errorf("postamble ran %d times, want 1", count(tk.calls, "postamble"))
	}
}

func TestRunPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	tk := &hookTask{performErr: boom}
	tk.Propagate = true

	res, err := Run(tk)
	if err != boom {
		t.Errorf("Run error = %v, want %v", err, boom)
	}
	// The error is still captured on the result before the postamble.
	if res.Err() != boom {
		t.Errorf("result error = %v, want %v", res.Err(), boom)
	}
	// Cleanup runs before the error escapes.
	if count(tk.calls, "postamble") != 1 {
		t.Errorf("postamble ran %d times, want 1", count(tk.calls, "postamble"))
	}
	if tk.calls[len(tk.calls)-1] != "postamble" {
		t.Errorf("last call = %s, want postamble", tk.calls[len(tk.calls)-1])
	}
}

func TestRunRecoversPanic(t *testing.T) {
	tk := &hookTask{panicWith: "unexpected"}

	res, err := Run(tk)
	if err != nil {
		t.Fatalf("Run should capture the panic, got: %v", err)
	}
	if res.Err() == nil {
		t.Fatal("expected captured panic on result")
	}
	if taskerrors.Code(res.Err()) != taskerrors.ErrCodePanic {
		t.Errorf("error code = %v, want PANIC", taskerrors.Code(res.Err()))
	}
	if count(tk.calls, "postamble") != 1 {
		t.Errorf("postamble ran %d times, want 1", count(tk.calls, "postamble"))
	}
}

func TestRunAssignsRunID(t *testing.T) {
	first := &hookTask{}
	res1, _ := Run(first)
	br1, ok := res1.(*BaseResult)
	if !ok {
		t.Fatalf("result type = %T, want *BaseResult", res1)
	}
	if br1.RunID() == "" {
		t.Fatal("run ID should be assigned")
	}

	second := &hookTask{}
	res2, _ := Run(second)
	if res2.(*BaseResult).RunID() == br1.RunID() {
		t.Error("run IDs should be unique per run")
	}
}

func TestStatusDefaults(t *testing.T) {
	tk := &hookTask{}
	if tk.Status() != StatusPending {
		t.Errorf("Status() = %s, want pending", tk.Status())
	}
	if StatusPending.IsTerminal() || StatusRunning.IsTerminal() {
		t.Error("pending/running should not be terminal")
	}
	if !StatusSucceeded.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Error("succeeded/failed should be terminal")
	}
}

func TestResultNeverNil(t *testing.T) {
	tk := &hookTask{}
	if tk.Result() == nil {
		t.Fatal("Result() should allocate on first use")
	}
}

func TestName(t *testing.T) {
	if got := Name(&hookTask{}); got != "hookTask" {
		t.Errorf("Name() = %s, want hookTask", got)
	}
}
