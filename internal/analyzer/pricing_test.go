package analyzer

import (
	"testing"

	"github.com/blackwell-systems/wrapped/internal/claude"
	"github.com/stretchr/testify/assert"
)

func TestRateFor_ExactMatch(t *testing.T) {
	r := RateFor("claude-3-haiku-20240307")
	assert.Equal(t, 0.25, r.InputPerMillion)
	assert.Equal(t, 1.25, r.OutputPerMillion)
}

func TestRateFor_FamilyRules(t *testing.T) {
	tests := []struct {
		model string
		want  Rates
	}{
		{"claude-opus-4-experimental", ratesOpus4},
		{"OPUS4-preview", ratesOpus4},
		{"some-sonnet-4-build", ratesSonnet4},
		{"sonnet4x", ratesSonnet4},
		{"claude-opus-next", ratesOpus3},
		{"haiku-3-5-custom", ratesHaiku35},
		{"my-haiku-variant", ratesHaiku3},
		{"a-sonnet-thing", ratesSonnet35},
		{"totally-unknown-model", ratesSonnet35},
		{"", ratesSonnet35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RateFor(tt.model), "model %q", tt.model)
	}
}

func TestRateFor_Opus4BeatsPlainOpus(t *testing.T) {
	// "opus" alone maps to the Opus 3 tier, but the opus-4 rule has higher
	// priority when both substrings apply.
	assert.Equal(t, ratesOpus4, RateFor("mystery-opus-4"))
	assert.Equal(t, ratesOpus3, RateFor("mystery-opus-3"))
}

func TestCost_LinearCombination(t *testing.T) {
	// Sonnet 4: 3 / 15 / 3.75 / 0.3 per million.
	got := Cost("claude-sonnet-4-20250514", 1_000_000, 2_000_000, 1_000_000, 10_000_000)
	assert.InDelta(t, 3.0+30.0+3.75+3.0, got, 1e-9)
}

func TestCost_ZeroTokens(t *testing.T) {
	assert.Zero(t, Cost("claude-sonnet-4-20250514", 0, 0, 0, 0))
}

func TestTotalCost_PrefersSourceCost(t *testing.T) {
	usage := map[string]claude.ModelUsage{
		// Source cost present and positive: wins over any computed value.
		"claude-opus-4-20250514": {OutputTokens: 1_000_000, CostUSD: 1.5},
		// No source cost: computed from tokens (1M output on sonnet-4 = $15).
		"claude-sonnet-4-20250514": {OutputTokens: 1_000_000},
	}
	assert.InDelta(t, 1.5+15.0, TotalCost(usage), 1e-9)
}

func TestTotalCost_Empty(t *testing.T) {
	assert.Zero(t, TotalCost(nil))
}
