package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signalnine/perfbench/internal/catalog"
)

const taskYAML = `id: numpy-001
status:
  human: COMPLETE
  llm: COMING_SOON
comparison:
  llm_better: COMING_SOON
workload:
  language: python
  code: |
    import time
    print("Mean: 1.0 Std Dev: 0.1")
docker:
  base_image: bench/numpy-001-base
  human_image: bench/numpy-001-human
  llm_image: PLACEHOLDER
  commands:
    run_base: python <WORKLOAD_PY>
    run_human: chmod +x /perf.sh && git apply /tmp/patch.diff && /perf.sh
    run_llm: echo 'LLM image not available yet for {id}. Please fill docker.llm_image.'
`

const driftedYAML = `id: numpy-002
workload:
  language: python
  code: print("hi")
docker:
  base_image: bench/numpy-002-base
  human_image: bench/numpy-002-human
  llm_image: PLACEHOLDER
  commands:
    run_base: python <WORKLOAD_PY>
    run_human: /perf.sh
`

func writeTasks(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadSortedOrder(t *testing.T) {
	dir := writeTasks(t, map[string]string{
		"numpy-002.yml": driftedYAML,
		"numpy-001.yml": taskYAML,
		"notes.txt":     "ignored",
	})
	tasks, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "numpy-001" || tasks[1].ID != "numpy-002" {
		t.Errorf("wrong order: %s, %s", tasks[0].ID, tasks[1].ID)
	}
	if tasks[0].Status["human"] != "COMPLETE" {
		t.Errorf("status not loaded: %v", tasks[0].Status)
	}
}

func TestLoadCanonicalizesHumanCommand(t *testing.T) {
	dir := writeTasks(t, map[string]string{"numpy-002.yml": driftedYAML})
	tasks, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := tasks[0].Docker.Commands.RunHuman
	if got != catalog.CanonicalHumanCommand {
		t.Errorf("human command not canonicalized: %q", got)
	}
	if tasks[0].StoredHumanCommand() != "/perf.sh" {
		t.Errorf("stored command lost: %q", tasks[0].StoredHumanCommand())
	}
}

func TestLoadMissingID(t *testing.T) {
	dir := writeTasks(t, map[string]string{"bad.yml": "workload:\n  code: x\n"})
	if _, err := catalog.Load(dir); err == nil {
		t.Error("expected error for task without id")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestSelect(t *testing.T) {
	tasks := []catalog.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := catalog.Select(tasks, []string{"c", "a"})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Select returned %v", got)
	}
	if len(catalog.Select(tasks, nil)) != 3 {
		t.Error("nil selection should return all tasks")
	}
	if len(catalog.Select(tasks, []string{"zzz"})) != 0 {
		t.Error("unknown id should select nothing")
	}
}

func TestLLMAvailable(t *testing.T) {
	tests := []struct {
		image string
		want  bool
	}{
		{"", false},
		{"PLACEHOLDER", false},
		{"placeholder-todo", false},
		{"  PLACEHOLDER  ", false},
		{"bench/llm-image:v1", true},
	}
	for _, tt := range tests {
		d := catalog.Docker{LLMImage: tt.image}
		if got := d.LLMAvailable(); got != tt.want {
			t.Errorf("LLMAvailable(%q) = %v, want %v", tt.image, got, tt.want)
		}
	}
}
