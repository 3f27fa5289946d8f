package task

// Pipe merges the fields of a prior task's result into next and runs it.
// A nil result contributes nothing; next still runs. This is the explicit
// form of pipeline chaining: each stage's result seeds the next stage's
// fields, left to right.
func Pipe(prev Result, next Task) (Result, error) {
	if prev != nil {
		if err := Merge(next, prev); err != nil {
			return nil, err
		}
	}
	return Run(next)
}

// Chain runs tasks left to right, piping each result into the task that
// follows. It stops at the first propagated error and returns the result
// of the last task that ran.
func Chain(first Task, rest ...Task) (Result, error) {
	res, err := Run(first)
	if err != nil {
		return res, err
	}
	for _, next := range rest {
		res, err = Pipe(res, next)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
