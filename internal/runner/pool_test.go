package runner_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/signalnine/perfbench/internal/runner"
)

func TestRunPoolExecutesAll(t *testing.T) {
	var count int64
	var jobs []runner.Job
	for i := 0; i < 20; i++ {
		jobs = append(jobs, func() error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	}
	errs := runner.RunPool(4, jobs)
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if count != 20 {
		t.Errorf("executed %d jobs, want 20", count)
	}
}

func TestRunPoolCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	jobs := []runner.Job{
		func() error { return nil },
		func() error { return boom },
		func() error { return boom },
	}
	errs := runner.RunPool(2, jobs)
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2", len(errs))
	}
}

func TestRunPoolZeroWorkers(t *testing.T) {
	ran := false
	errs := runner.RunPool(0, []runner.Job{func() error { ran = true; return nil }})
	if len(errs) != 0 || !ran {
		t.Error("pool with clamped workers should still run jobs")
	}
}
