// Package extract recovers timing statistics from free-form benchmark output.
//
// The grammar it accepts: a mean is labeled `mean`, `average`, or `avg`
// (optionally prefixed with `after `); a standard deviation is labeled
// `std`, `std dev`, `std.`, `sd`, `stddev`, or `std deviation`. Labels are
// case-insensitive and followed by `:` or `=` and a float literal (decimal,
// leading-dot, or exponent form). When output contains one or more
// PERF_START:/PERF_END: blocks, extraction is scoped to the last block and
// falls back to the whole text if the block yields no complete pair.
package extract

import (
	"regexp"
	"strconv"
)

// Metric is a mean/standard-deviation pair recovered from benchmark output.
type Metric struct {
	Mean float64 `json:"mean" yaml:"mean"`
	Std  float64 `json:"std" yaml:"std"`
}

// Strategy parses raw program output into a Metric. Implementations must be
// pure: same text in, same metric out, no side effects. A nil return means
// extraction failed.
type Strategy interface {
	Extract(raw string) *Metric
}

const floatLit = `[-+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`

var (
	meanRE  = regexp.MustCompile(`(?i)\b(?:after\s+)?(?:mean|average|avg)\s*[:=]\s*(` + floatLit + `)`)
	stdRE   = regexp.MustCompile(`(?i)\b(?:std\s+deviation|std\s+dev|stddev|std\.?|sd)\s*[:=]\s*(` + floatLit + `)`)
	blockRE = regexp.MustCompile(`(?is)PERF_START:(.*?)PERF_END:`)
)

type labeledStats struct{}

// Default returns the standard labeled-stats extraction strategy.
func Default() Strategy {
	return labeledStats{}
}

func (labeledStats) Extract(raw string) *Metric {
	scope := raw
	if blocks := blockRE.FindAllStringSubmatch(raw, -1); len(blocks) > 0 {
		// Programs that print multiple measurement rounds put the
		// representative one last.
		scope = blocks[len(blocks)-1][1]
	}

	mean, std, ok := scanPair(scope)
	if !ok && scope != raw {
		mean, std, ok = scanPair(raw)
	}
	if !ok {
		return nil
	}
	return &Metric{Mean: mean, Std: std}
}

func scanPair(text string) (mean, std float64, ok bool) {
	m := lastMatch(meanRE, text)
	s := lastMatch(stdRE, text)
	if m == "" || s == "" {
		return 0, 0, false
	}
	mean, errM := strconv.ParseFloat(m, 64)
	std, errS := strconv.ParseFloat(s, 64)
	if errM != nil || errS != nil {
		return 0, 0, false
	}
	return mean, std, true
}

func lastMatch(re *regexp.Regexp, text string) string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}
