// Package catalog loads benchmark task definitions from per-task YAML files.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaceholderPrefix marks a variant image that is not yet available.
const PlaceholderPrefix = "PLACEHOLDER"

// CanonicalHumanCommand is the required shape of the human-variant script:
// grant execute permission on the measurement entry point, apply the patch,
// run the entry point. Stored templates that drift from it are rewritten at
// load time.
const CanonicalHumanCommand = "chmod +x /perf.sh && git apply /tmp/patch.diff && /perf.sh"

type Task struct {
	ID         string            `yaml:"id"`
	Status     map[string]string `yaml:"status"`
	Comparison map[string]string `yaml:"comparison"`
	Repo       Repo              `yaml:"repo"`
	Workload   Workload          `yaml:"workload"`
	Docker     Docker            `yaml:"docker"`
	Metrics    Metrics           `yaml:"metrics,omitempty"`
	Notes      Notes             `yaml:"notes,omitempty"`
	Meta       Meta              `yaml:"meta,omitempty"`

	// storedHumanCommand keeps the pre-normalization human template so
	// drift can still be reported after Load canonicalizes it.
	storedHumanCommand string
}

// StoredHumanCommand returns the human command as it appeared in the task
// file, before canonicalization.
func (t *Task) StoredHumanCommand() string {
	return t.storedHumanCommand
}

type Repo struct {
	Org         string `yaml:"org"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	PullRequest string `yaml:"pull_request"`
	BaseCommit  string `yaml:"base_commit"`
	CreatedAt   string `yaml:"created_at"`
	Version     string `yaml:"version"`
}

type Workload struct {
	Language string `yaml:"language"`
	Code     string `yaml:"code"`
}

type Docker struct {
	BaseImage  string   `yaml:"base_image"`
	HumanImage string   `yaml:"human_image"`
	LLMImage   string   `yaml:"llm_image"`
	Commands   Commands `yaml:"commands"`
}

type Commands struct {
	RunBase  string `yaml:"run_base"`
	RunHuman string `yaml:"run_human"`
	RunLLM   string `yaml:"run_llm"`
}

type Metrics struct {
	Reducer string `yaml:"reducer,omitempty"`
}

type Notes struct {
	UserNotes     string `yaml:"user_notes,omitempty"`
	ReviewerNotes string `yaml:"reviewer_notes,omitempty"`
}

type Meta struct {
	NumCoveringTests string `yaml:"num_covering_tests,omitempty"`
}

// LLMAvailable reports whether the llm image is set and not a placeholder.
func (d *Docker) LLMAvailable() bool {
	img := strings.TrimSpace(d.LLMImage)
	return img != "" && !strings.HasPrefix(strings.ToUpper(img), PlaceholderPrefix)
}

// Load reads every .yml/.yaml file in dir in sorted filename order.
// Definitions that fail to parse or lack an id are rejected; the human
// command is normalized to CanonicalHumanCommand as part of validation.
func Load(dir string) ([]Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading tasks dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var tasks []Task
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading task %s: %w", path, err)
		}
		var t Task
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing task %s: %w", path, err)
		}
		if t.ID == "" {
			return nil, fmt.Errorf("task %s: id is required", path)
		}
		normalize(&t)
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Select filters tasks to the given ids, preserving catalog order. A nil or
// empty id list selects everything.
func Select(tasks []Task, ids []string) []Task {
	if len(ids) == 0 {
		return tasks
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var selected []Task
	for _, t := range tasks {
		if want[t.ID] {
			selected = append(selected, t)
		}
	}
	return selected
}

// HumanCommandDrifted reports whether a stored human command deviates from
// the canonical protocol.
func HumanCommandDrifted(cmd string) bool {
	return cmd != "" && cmd != CanonicalHumanCommand
}

func normalize(t *Task) {
	if t.Status == nil {
		t.Status = map[string]string{}
	}
	if t.Comparison == nil {
		t.Comparison = map[string]string{}
	}
	// Stale human templates drift from the patch protocol over time; the
	// canonical shape wins over whatever was stored.
	t.storedHumanCommand = t.Docker.Commands.RunHuman
	if HumanCommandDrifted(t.Docker.Commands.RunHuman) {
		t.Docker.Commands.RunHuman = CanonicalHumanCommand
	}
}
