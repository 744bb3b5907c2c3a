package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/result"
)

// Orchestrator drives one benchmark run: iterate the selected tasks, run
// the three variants of each in order, aggregate, and upsert into the
// store. The store is saved exactly once, after every task has been
// processed.
type Orchestrator struct {
	Tasks     []catalog.Task
	Env       Environment
	Store     *result.Store
	Extractor extract.Strategy
	Timeout   time.Duration
	Parallel  int
	Out       io.Writer

	outMu sync.Mutex
}

// Run processes the catalog, restricted to ids when given. An empty
// selection is a clean no-op: nothing is executed and the store is not
// touched.
func (o *Orchestrator) Run(ctx context.Context, ids []string) error {
	out := o.Out
	if out == nil {
		out = os.Stdout
	}
	strategy := o.Extractor
	if strategy == nil {
		strategy = extract.Default()
	}

	tasks := catalog.Select(o.Tasks, ids)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	// One timestamp per run; every record touched this run gets it.
	updatedAt := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	if o.Parallel > 1 {
		jobs := make([]Job, 0, len(tasks))
		for i := range tasks {
			t := &tasks[i]
			jobs = append(jobs, func() error {
				return o.runTask(ctx, t, strategy, updatedAt, out)
			})
		}
		for _, err := range RunPool(o.Parallel, jobs) {
			fmt.Fprintf(out, "  ERROR: %v\n", err)
		}
	} else {
		for i := range tasks {
			if err := o.runTask(ctx, &tasks[i], strategy, updatedAt, out); err != nil {
				fmt.Fprintf(out, "  ERROR: %v\n", err)
			}
		}
	}

	if err := o.Store.Save(); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	fmt.Fprintf(out, "Done. Wrote %s\n", o.Store.Path())
	return nil
}

// runTask materializes the task workload to a temp file scoped to the
// task's three variant runs, executes base, human, llm in that order,
// and upserts the aggregated record.
//
// Progress lines accumulate in a per-task buffer and reach out in one
// write under outMu, so parallel tasks never interleave (or race on)
// the shared writer.
func (o *Orchestrator) runTask(ctx context.Context, t *catalog.Task, strategy extract.Strategy, updatedAt string, out io.Writer) error {
	var progress bytes.Buffer
	defer func() {
		o.outMu.Lock()
		out.Write(progress.Bytes())
		o.outMu.Unlock()
	}()

	if strings.TrimSpace(t.Workload.Code) == "" {
		fmt.Fprintf(&progress, "%s has empty workload code; skipping\n", t.ID)
		return nil
	}

	dir, err := os.MkdirTemp("", "perfbench-"+t.ID+"-")
	if err != nil {
		return fmt.Errorf("creating workload dir for %s: %w", t.ID, err)
	}
	defer os.RemoveAll(dir)

	workloadPath := filepath.Join(dir, "workload.py")
	if err := os.WriteFile(workloadPath, []byte(t.Workload.Code), 0o644); err != nil {
		return fmt.Errorf("writing workload for %s: %w", t.ID, err)
	}

	fmt.Fprintf(&progress, "Running %s...\n", t.ID)
	outcomes := make(map[Variant]Outcome, len(Variants))
	for _, v := range Variants {
		oc := RunVariant(ctx, o.Env, t, v, workloadPath, o.Timeout, strategy)
		outcomes[v] = oc
		fmt.Fprintf(&progress, "  %s: %s%s\n", v, oc.Status, exitSuffix(oc))
	}

	rec := Aggregate(t, outcomes[VariantBase], outcomes[VariantHuman], outcomes[VariantLLM], updatedAt)
	o.Store.Upsert(rec)
	return nil
}

func exitSuffix(oc Outcome) string {
	if oc.Status == StatusOK || oc.Status == StatusParseFailed {
		return fmt.Sprintf(" (exit %d)", oc.ExitCode)
	}
	return ""
}
