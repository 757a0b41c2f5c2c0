// Package analyzer turns collected Claude Code usage data into the yearly
// wrapped summary.
package analyzer

import (
	"strings"

	"github.com/blackwell-systems/wrapped/internal/claude"
)

// Rates holds per-million-token pricing for a single model.
type Rates struct {
	InputPerMillion      float64
	OutputPerMillion     float64
	CacheWritePerMillion float64
	CacheReadPerMillion  float64
}

// Pricing tiers as of early 2026. Cache write = 1.25x input, cache read =
// 0.1x input.
var (
	ratesOpus4 = Rates{
		InputPerMillion:      15.0,
		OutputPerMillion:     75.0,
		CacheWritePerMillion: 18.75,
		CacheReadPerMillion:  1.5,
	}
	ratesSonnet4 = Rates{
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheWritePerMillion: 3.75,
		CacheReadPerMillion:  0.3,
	}
	ratesOpus3 = Rates{
		InputPerMillion:      15.0,
		OutputPerMillion:     75.0,
		CacheWritePerMillion: 18.75,
		CacheReadPerMillion:  1.5,
	}
	ratesHaiku35 = Rates{
		InputPerMillion:      0.8,
		OutputPerMillion:     4.0,
		CacheWritePerMillion: 1.0,
		CacheReadPerMillion:  0.08,
	}
	ratesHaiku3 = Rates{
		InputPerMillion:      0.25,
		OutputPerMillion:     1.25,
		CacheWritePerMillion: 0.3,
		CacheReadPerMillion:  0.03,
	}
	ratesSonnet35 = Rates{
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheWritePerMillion: 3.75,
		CacheReadPerMillion:  0.3,
	}
)

// knownRates maps full model identifiers to their pricing.
var knownRates = map[string]Rates{
	"claude-opus-4-20250514":     ratesOpus4,
	"claude-opus-4-1-20250805":   ratesOpus4,
	"claude-sonnet-4-20250514":   ratesSonnet4,
	"claude-sonnet-4-5-20250929": ratesSonnet4,
	"claude-3-opus-20240229":     ratesOpus3,
	"claude-3-5-haiku-20241022":  ratesHaiku35,
	"claude-3-haiku-20240307":    ratesHaiku3,
	"claude-3-5-sonnet-20241022": ratesSonnet35,
	"claude-3-5-sonnet-20240620": ratesSonnet35,
}

// RateFor resolves pricing for a model identifier. Unknown identifiers fall
// through case-insensitive family rules in fixed priority order, and finally
// to a Sonnet-3.5-equivalent default; every input resolves to a rate.
func RateFor(modelID string) Rates {
	if r, ok := knownRates[modelID]; ok {
		return r
	}

	id := strings.ToLower(modelID)
	switch {
	case strings.Contains(id, "opus-4") || strings.Contains(id, "opus4"):
		return ratesOpus4
	case strings.Contains(id, "sonnet-4") || strings.Contains(id, "sonnet4"):
		return ratesSonnet4
	case strings.Contains(id, "opus"):
		return ratesOpus3
	case strings.Contains(id, "haiku") && strings.Contains(id, "3-5"):
		return ratesHaiku35
	case strings.Contains(id, "haiku"):
		return ratesHaiku3
	case strings.Contains(id, "sonnet"):
		return ratesSonnet35
	default:
		return ratesSonnet35
	}
}

// Cost computes the USD cost of a token usage at a model's rates.
func Cost(modelID string, input, output, cacheWrite, cacheRead int64) float64 {
	r := RateFor(modelID)
	return float64(input)/1_000_000*r.InputPerMillion +
		float64(output)/1_000_000*r.OutputPerMillion +
		float64(cacheWrite)/1_000_000*r.CacheWritePerMillion +
		float64(cacheRead)/1_000_000*r.CacheReadPerMillion
}

// TotalCost sums the cost across per-model usage records. A source-provided
// cost reflects true billing and wins when positive; otherwise the cost is
// computed from token counts as a best-effort fallback.
func TotalCost(usage map[string]claude.ModelUsage) float64 {
	var total float64
	for modelID, u := range usage {
		if u.CostUSD > 0 {
			total += u.CostUSD
			continue
		}
		total += Cost(modelID, u.InputTokens, u.OutputTokens,
			u.CacheCreationInputTokens, u.CacheReadInputTokens)
	}
	return total
}
