package result

import "github.com/signalnine/perfbench/internal/extract"

// Record is one row of the persisted store, keyed by task id. It is rebuilt
// wholesale every run and merged by id, never mutated in place.
type Record struct {
	ID               string            `json:"id"`
	Before           *extract.Metric   `json:"before"`
	AfterHuman       *extract.Metric   `json:"after_human"`
	AfterLLM         *extract.Metric   `json:"after_llm"`
	HumanImprovement *float64          `json:"human_improvement"`
	LLMImprovement   *float64          `json:"llm_improvement"`
	SpeedupHuman     *float64          `json:"speedup_human"`
	SpeedupLLM       *float64          `json:"speedup_llm"`
	Comparison       map[string]string `json:"comparison"`
	Status           map[string]string `json:"status"`
	Stats            Stats             `json:"stats"`
	UpdatedAt        string            `json:"updated_at"`
}

// Stats is carried through for forward compatibility with resource
// collection; the current engine stamps it without populating samples.
type Stats struct {
	Collect  bool     `json:"collect"`
	CPUP95   *float64 `json:"cpu_p95"`
	MemMaxMB *float64 `json:"mem_max_mb"`
}

// Classification values for comparison["llm_better"].
const (
	LLMBetterYes        = "YES"
	LLMBetterNo         = "NO"
	LLMBetterTie        = "TIE"
	LLMBetterComingSoon = "COMING_SOON"
	LLMBetterUnknown    = "UNKNOWN"
)
