package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/report"
	"github.com/signalnine/perfbench/internal/result"
)

func sampleRecords() []result.Record {
	imp := -20.0
	return []result.Record{
		{
			ID:               "numpy-001",
			Before:           &extract.Metric{Mean: 100.0, Std: 5.0},
			AfterHuman:       &extract.Metric{Mean: 80.0, Std: 4.0},
			HumanImprovement: &imp,
			Comparison:       map[string]string{"llm_better": "COMING_SOON"},
		},
		{
			ID:         "numpy-002",
			Comparison: map[string]string{"llm_better": "UNKNOWN"},
		},
	}
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(sampleRecords(), "table", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"numpy-001", "100.000 ± 5.000", "-20.0%", "COMING_SOON", "numpy-002", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(sampleRecords(), "markdown", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "| Task |") {
		t.Errorf("markdown header missing:\n%s", out)
	}
	if !strings.Contains(out, "| numpy-001 |") {
		t.Errorf("markdown row missing:\n%s", out)
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(sampleRecords(), "json", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var decoded []result.Record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "numpy-001" {
		t.Errorf("unexpected decoded records: %+v", decoded)
	}
}
