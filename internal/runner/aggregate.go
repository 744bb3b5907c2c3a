package runner

import (
	"strings"

	"github.com/signalnine/perfbench/internal/catalog"
	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/result"
)

// epsilon guards the human/llm mean comparison against floating-point
// noise producing spurious YES/NO on near-equal timings.
const epsilon = 1e-9

// Aggregate builds the task's result record from the three variant
// outcomes. The record is rebuilt wholesale; the task's stored status and
// comparison maps are carried over before classification is applied.
func Aggregate(task *catalog.Task, base, human, llm Outcome, updatedAt string) result.Record {
	rec := result.Record{
		ID:         task.ID,
		Before:     base.Metric,
		AfterHuman: human.Metric,
		AfterLLM:   llm.Metric,
		Status:     copyMap(task.Status),
		Comparison: copyMap(task.Comparison),
		UpdatedAt:  updatedAt,
	}

	rec.HumanImprovement = improvement(rec.Before, rec.AfterHuman)
	rec.LLMImprovement = improvement(rec.Before, rec.AfterLLM)
	rec.SpeedupHuman = speedup(rec.Before, rec.AfterHuman)
	rec.SpeedupLLM = speedup(rec.Before, rec.AfterLLM)

	rec.Comparison["llm_better"] = classify(task, rec.AfterHuman, rec.AfterLLM, rec.Comparison)
	return rec
}

// improvement is the signed percentage change of the after mean relative
// to the before mean; negative means faster.
func improvement(before, after *extract.Metric) *float64 {
	if before == nil || after == nil || before.Mean == 0 {
		return nil
	}
	v := (after.Mean - before.Mean) / before.Mean * 100
	return &v
}

// speedup is the legacy ratio form, before mean over after mean.
func speedup(before, after *extract.Metric) *float64 {
	if before == nil || after == nil || after.Mean == 0 || before.Mean == 0 {
		return nil
	}
	v := before.Mean / after.Mean
	return &v
}

func classify(task *catalog.Task, human, llm *extract.Metric, prior map[string]string) string {
	if human != nil && llm != nil {
		switch {
		case llm.Mean+epsilon < human.Mean:
			return result.LLMBetterYes
		case human.Mean+epsilon < llm.Mean:
			return result.LLMBetterNo
		default:
			return result.LLMBetterTie
		}
	}
	llmStatus := strings.ToUpper(task.Status["llm"])
	if llmStatus == "COMING_SOON" || llmStatus == "PENDING" || !task.Docker.LLMAvailable() {
		return result.LLMBetterComingSoon
	}
	if prev := prior["llm_better"]; prev != "" {
		return prev
	}
	return result.LLMBetterUnknown
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
