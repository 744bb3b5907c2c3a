package catalog

import (
	"fmt"
	"strings"
)

// Issue is a problem found in a task definition.
type Issue struct {
	TaskID  string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.TaskID, i.Message)
}

// Lint checks task definitions for conditions an operator should know
// about before a run: blank workloads, missing images or templates, and
// human commands that drifted from the canonical patch protocol. Load
// already rewrites drifted human commands, so drift is reported from the
// pre-normalization value the tasks retain.
func Lint(tasks []Task) []Issue {
	var issues []Issue
	for _, t := range tasks {
		if strings.TrimSpace(t.Workload.Code) == "" {
			issues = append(issues, Issue{t.ID, "workload code is empty; task will be skipped"})
		}
		if t.Docker.BaseImage == "" {
			issues = append(issues, Issue{t.ID, "base image is not set"})
		}
		if t.Docker.HumanImage == "" {
			issues = append(issues, Issue{t.ID, "human image is not set"})
		}
		if !t.Docker.LLMAvailable() {
			issues = append(issues, Issue{t.ID, "llm image is a placeholder; llm variant will be skipped"})
		}
		if t.Docker.Commands.RunBase == "" {
			issues = append(issues, Issue{t.ID, "missing command template for base"})
		}
		if t.Docker.Commands.RunHuman == "" {
			issues = append(issues, Issue{t.ID, "missing command template for human"})
		}
		if stored := t.StoredHumanCommand(); HumanCommandDrifted(stored) {
			issues = append(issues, Issue{t.ID, fmt.Sprintf("human command drifted from canonical protocol (stored %q)", stored)})
		}
	}
	return issues
}
