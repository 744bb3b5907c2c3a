package result_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/result"
)

func rec(id string, mean float64) result.Record {
	return result.Record{
		ID:         id,
		Before:     &extract.Metric{Mean: mean, Std: mean / 10},
		Comparison: map[string]string{"llm_better": "UNKNOWN"},
		Status:     map[string]string{},
		UpdatedAt:  "2026-01-01T00:00:00Z",
	}
}

func TestUpsertIdempotent(t *testing.T) {
	s := result.Empty(filepath.Join(t.TempDir(), "results.json"))
	s.Upsert(rec("a", 1.0))
	s.Upsert(rec("a", 2.0))
	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Before.Mean != 2.0 {
		t.Errorf("latest content should win, got mean %g", records[0].Before.Mean)
	}
}

func TestUpsertPreservesOrder(t *testing.T) {
	s := result.Empty(filepath.Join(t.TempDir(), "results.json"))
	s.Upsert(rec("a", 1.0))
	s.Upsert(rec("b", 2.0))
	s.Upsert(rec("c", 3.0))
	s.Upsert(rec("b", 20.0))
	records := s.Records()
	ids := []string{records[0].ID, records[1].ID, records[2].ID}
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("order changed: %v", ids)
	}
	if records[1].Before.Mean != 20.0 {
		t.Errorf("replaced record not updated: %g", records[1].Before.Mean)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.json")
	s := result.Empty(path)
	s.Upsert(rec("a", 1.5))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := result.Load(path)
	records := loaded.Records()
	if len(records) != 1 || records[0].ID != "a" {
		t.Fatalf("round trip lost records: %v", records)
	}
	if records[0].Before == nil || records[0].Before.Mean != 1.5 {
		t.Errorf("metric not preserved: %v", records[0].Before)
	}
	if records[0].AfterLLM != nil {
		t.Errorf("nil metric should stay nil, got %v", records[0].AfterLLM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := result.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if len(s.Records()) != 0 {
		t.Error("missing file should load as empty store")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := result.Load(path)
	if len(s.Records()) != 0 {
		t.Error("corrupt file should load as empty store")
	}
	// The store must still be writable so a run rebuilds the file.
	s.Upsert(rec("a", 1.0))
	if err := s.Save(); err != nil {
		t.Fatalf("Save after corrupt load: %v", err)
	}
}

func TestSaveEmptyStoreWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := result.Empty(path).Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty store should serialize as [], got %q", data)
	}
}
