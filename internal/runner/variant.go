// Package runner executes the three variants of each benchmark task and
// folds their outcomes into persisted comparison records.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/docker"
	"github.com/signalnine/perfbench/internal/extract"
)

type Variant string

const (
	VariantBase  Variant = "base"
	VariantHuman Variant = "human"
	VariantLLM   Variant = "llm"
)

// Variants is the required execution order within a task: improvement math
// downstream is defined relative to base.
var Variants = []Variant{VariantBase, VariantHuman, VariantLLM}

// Environment runs a container spec and returns its combined output. The
// core never branches on exit codes, only on the captured text.
type Environment interface {
	Run(ctx context.Context, spec *docker.Spec) (*docker.Result, error)
}

// Outcome is the result of running one variant of one task.
type Outcome struct {
	Metric   *extract.Metric
	Status   string
	ExitCode int
	Output   string
}

const (
	StatusOK                 = "OK"
	StatusSkippedPlaceholder = "skipped (placeholder)"
	StatusParseFailed        = "parse failed"
	StatusTimeout            = "timeout"
)

// WorkloadMountPath is where the materialized workload file appears inside
// every variant container.
const WorkloadMountPath = "/tmp/workload.py"

// outputTail bounds how much captured text an Outcome retains for
// debugging.
const outputTail = 2000

// RunVariant resolves the variant's command template and image, executes
// the script in the variant's container, and extracts metrics from the
// output. Every failure mode degrades to a status string, never an error
// that would abort the task.
func RunVariant(ctx context.Context, env Environment, task *catalog.Task, variant Variant, workloadPath string, timeout time.Duration, strategy extract.Strategy) Outcome {
	tmpl, image := commandFor(task, variant)

	if variant == VariantLLM && !task.Docker.LLMAvailable() {
		return Outcome{Status: StatusSkippedPlaceholder}
	}
	if tmpl == "" {
		return Outcome{Status: fmt.Sprintf("missing command template for %s", variant)}
	}

	spec := &docker.Spec{
		Image:  image,
		Script: renderScript(tmpl, task),
		Mounts: []docker.Mount{
			{Source: workloadPath, Target: WorkloadMountPath, ReadOnly: true},
		},
		Timeout: timeout,
	}

	res, err := env.Run(ctx, spec)
	if err != nil {
		return Outcome{Status: fmt.Sprintf("execution failed: %v", err)}
	}

	out := Outcome{ExitCode: res.ExitCode, Output: tail(res.Output, outputTail)}
	if res.TimedOut {
		out.Status = StatusTimeout
		return out
	}
	if m := strategy.Extract(res.Output); m != nil {
		out.Metric = m
		out.Status = StatusOK
	} else {
		out.Status = StatusParseFailed
	}
	return out
}

func commandFor(task *catalog.Task, variant Variant) (tmpl, image string) {
	d := &task.Docker
	switch variant {
	case VariantBase:
		return d.Commands.RunBase, d.BaseImage
	case VariantHuman:
		return d.Commands.RunHuman, d.HumanImage
	case VariantLLM:
		return d.Commands.RunLLM, d.LLMImage
	}
	return "", ""
}

// renderScript substitutes template placeholders. The result is the script
// run inside the container; mounts and container flags come from the Spec,
// not from the template.
func renderScript(tmpl string, task *catalog.Task) string {
	r := strings.NewReplacer(
		"{id}", task.ID,
		"{base_image}", task.Docker.BaseImage,
		"{human_image}", task.Docker.HumanImage,
		"{llm_image}", task.Docker.LLMImage,
		"<WORKLOAD_PY>", WorkloadMountPath,
	)
	return r.Replace(tmpl)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
