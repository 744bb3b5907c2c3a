// Package report renders persisted benchmark records for humans.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/perfbench/internal/extract"
	"github.com/signalnine/perfbench/internal/result"
)

// Generate renders the store's records in the requested format: "table"
// (default), "markdown", or "json".
func Generate(records []result.Record, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(records, w)
	case "json":
		return writeJSON(records, w)
	default:
		return writeTable(records, w)
	}
}

func writeTable(records []result.Record, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK\tBEFORE\tHUMAN\tLLM\tHUMAN Δ%\tLLM Δ%\tLLM BETTER")
	fmt.Fprintln(tw, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			fmtMetric(r.Before),
			fmtMetric(r.AfterHuman),
			fmtMetric(r.AfterLLM),
			fmtPct(r.HumanImprovement),
			fmtPct(r.LLMImprovement),
			r.Comparison["llm_better"],
		)
	}
	return tw.Flush()
}

func writeMarkdown(records []result.Record, w io.Writer) error {
	fmt.Fprintln(w, "| Task | Before | Human | LLM | Human Δ% | LLM Δ% | LLM Better |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
	for _, r := range records {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
			r.ID,
			fmtMetric(r.Before),
			fmtMetric(r.AfterHuman),
			fmtMetric(r.AfterLLM),
			fmtPct(r.HumanImprovement),
			fmtPct(r.LLMImprovement),
			r.Comparison["llm_better"],
		)
	}
	return nil
}

func writeJSON(records []result.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func fmtMetric(m *extract.Metric) string {
	if m == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f ± %.3f", m.Mean, m.Std)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}
