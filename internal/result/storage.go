package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store holds the full collection of records for one backing file, loaded
// once at the start of a run and saved once at the end. Upsert is safe for
// concurrent use so tasks may be processed in parallel.
type Store struct {
	path string

	mu      sync.Mutex
	records []Record
}

// Load reads the backing file at path. A missing, unreadable, or corrupt
// file yields an empty store: a run can always proceed and will rebuild
// the file on save.
func Load(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return s
	}
	s.records = records
	return s
}

// Empty returns a store for path with no records, ignoring any existing
// file contents (a fresh run).
func Empty(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Records returns a copy of the current collection in store order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Upsert replaces the record sharing rec.ID or appends when the id is new.
// Existing order is preserved; append order defines order for new ids.
func (s *Store) Upsert(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return
		}
	}
	s.records = append(s.records, rec)
}

// Save overwrites the backing file with the full collection, creating the
// parent directory if needed. The write goes through a temp file and
// rename so a crash mid-write leaves the previous contents intact.
func (s *Store) Save() error {
	s.mu.Lock()
	records := s.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("creating temp results file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp results file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing results file: %w", err)
	}
	return nil
}
