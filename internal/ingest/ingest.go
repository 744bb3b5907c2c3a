// Package ingest converts a row-oriented task export (CSV) into per-task
// catalog YAML files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/perfbench/internal/catalog"
)

// Default command templates for freshly ingested tasks. The llm default is
// a human-readable stub, not a runnable benchmark: it stays in place until
// an llm image lands and the template is filled in.
const (
	defaultRunBase = "python <WORKLOAD_PY>"
	defaultRunLLM  = "echo 'LLM image not available yet for {id}. Please fill docker.llm_image.'"
)

// Convert reads csvPath and writes one YAML task definition per row into
// outDir. Rows without an instance id are skipped with a warning. Returns
// the number of files written.
func Convert(csvPath, outDir string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("opening csv %s: %w", csvPath, err)
	}
	defer f.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir %s: %w", outDir, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading csv %s: %w", csvPath, err)
	}
	if len(rows) < 1 {
		return 0, fmt.Errorf("csv %s has no header row", csvPath)
	}

	header := rows[0]
	col := func(row []string, name string) string {
		for i, h := range header {
			if h == name && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	written := 0
	for _, row := range rows[1:] {
		id := col(row, "instance_id")
		if id == "" {
			id = col(row, "id")
		}
		if id == "" {
			log.Printf("warning: skipping row without instance_id")
			continue
		}

		t := taskFromRow(id, row, col)
		data, err := yaml.Marshal(&t)
		if err != nil {
			return written, fmt.Errorf("marshaling task %s: %w", id, err)
		}
		path := filepath.Join(outDir, id+".yml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing task %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

func taskFromRow(id string, row []string, col func([]string, string) string) catalog.Task {
	repo := col(row, "repo")
	org, name := splitRepo(repo)

	humanStatus := col(row, "status")
	if humanStatus == "" {
		humanStatus = "PENDING"
	}

	return catalog.Task{
		ID: id,
		Status: map[string]string{
			"human": humanStatus,
			"llm":   "COMING_SOON",
		},
		Comparison: map[string]string{
			"llm_better": "COMING_SOON",
		},
		Repo: catalog.Repo{
			Org:         org,
			Name:        name,
			URL:         repoURL(repo),
			PullRequest: col(row, "pull_request_link"),
			BaseCommit:  col(row, "base_commit"),
			CreatedAt:   col(row, "created_at"),
			Version:     col(row, "version"),
		},
		Workload: catalog.Workload{
			Language: "python",
			Code:     col(row, "workload"),
		},
		Docker: catalog.Docker{
			BaseImage:  col(row, "base_docker_image"),
			HumanImage: col(row, "annotate_dockerhub_image"),
			LLMImage:   catalog.PlaceholderPrefix,
			Commands: catalog.Commands{
				RunBase:  defaultRunBase,
				RunHuman: catalog.CanonicalHumanCommand,
				RunLLM:   defaultRunLLM,
			},
		},
		Metrics: catalog.Metrics{Reducer: "mean_std"},
		Notes: catalog.Notes{
			UserNotes:     col(row, "notes"),
			ReviewerNotes: col(row, "reviewer_notes"),
		},
		Meta: catalog.Meta{
			NumCoveringTests: col(row, "num_covering_tests"),
		},
	}
}

func splitRepo(repo string) (org, name string) {
	if i := strings.Index(repo, "/"); i >= 0 {
		return repo[:i], repo[i+1:]
	}
	return "", repo
}

func repoURL(repo string) string {
	if strings.Contains(repo, "/") {
		return "https://github.com/" + repo
	}
	return ""
}
