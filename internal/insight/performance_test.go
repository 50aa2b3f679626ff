package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adforge/internal/types"
)

func f(v float64) *float64 { return &v }

func itemWith(id, headline, body string) types.VariantWithMeta {
	return types.VariantWithMeta{Variant: types.Variant{
		ID:          id,
		Headlines:   []string{headline},
		PrimaryText: body,
	}}
}

func TestPerformanceInsights_NumeralLift(t *testing.T) {
	items := []types.VariantWithMeta{
		itemWith("a", "Save 50 hours a month", "Teams cut review time."),
		itemWith("b", "A calmer pipeline", "Teams enjoy reviews."),
	}
	perf := map[string]types.PerformanceMetrics{
		"a": {CTR: f(5)},
		"b": {CTR: f(3)},
	}

	insights := PerformanceInsights(items, perf)
	require.NotEmpty(t, insights)

	// Best absolute CTR surfaces first, regardless of lift.
	assert.Contains(t, insights[0], "Best CTR: 5.00%")
	assert.Contains(t, insights[0], "Save 50 hours a month")

	// Numeral feature: lift = (5-3)/3 = ~66.7%.
	found := false
	for _, s := range insights[1:] {
		if strings.Contains(s, "numeral") && strings.Contains(s, "66.7%") {
			found = true
		}
	}
	assert.True(t, found, "expected a ~66.7%% numeral lift insight, got %v", insights)
}

func TestPerformanceInsights_NeedsTwoRecordedVariants(t *testing.T) {
	items := []types.VariantWithMeta{
		itemWith("a", "Save 50 hours", "body"),
		itemWith("b", "No numbers here", "body"),
	}
	perf := map[string]types.PerformanceMetrics{
		"a": {CTR: f(5)},
	}
	assert.Nil(t, PerformanceInsights(items, perf))
}

func TestPerformanceInsights_BothPartitionsNeedCTR(t *testing.T) {
	items := []types.VariantWithMeta{
		itemWith("a", "Save 50 hours", "body"),
		itemWith("b", "Also 99 reasons", "body"),
	}
	// Two recorded variants, but both carry the feature: no lacks-partition,
	// so only the best-CTR line appears.
	perf := map[string]types.PerformanceMetrics{
		"a": {CTR: f(5)},
		"b": {CTR: f(3)},
	}
	insights := PerformanceInsights(items, perf)
	for _, s := range insights {
		assert.NotContains(t, s, "numeral")
	}
}

func TestPerformanceInsights_SubThresholdLiftSuppressed(t *testing.T) {
	items := []types.VariantWithMeta{
		itemWith("a", "Save 50 hours", "plain words only"),
		itemWith("b", "A calm pipeline", "plain words only"),
	}
	// Lift = (5.1-5)/5 = 2% < 5%: suppressed.
	perf := map[string]types.PerformanceMetrics{
		"a": {CTR: f(5.1)},
		"b": {CTR: f(5)},
	}
	insights := PerformanceInsights(items, perf)
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "Best CTR")
}

func TestPerformanceInsights_CappedAtFour(t *testing.T) {
	// Variant a exhibits every feature, b none; all four features qualify,
	// plus the best-CTR line, but the cap holds at four lines total.
	items := []types.VariantWithMeta{
		itemWith("a", "Get 500 users today", "Start now, 200 reviews back it up."),
		itemWith("b", "A nice product", "It exists."),
		itemWith("c", "Also plain", "Nothing special."),
	}
	items[0].Variant.CTA = "Start free"
	perf := map[string]types.PerformanceMetrics{
		"a": {CTR: f(8)},
		"b": {CTR: f(2)},
		"c": {CTR: f(2)},
	}
	insights := PerformanceInsights(items, perf)
	assert.LessOrEqual(t, len(insights), 4)
	assert.Contains(t, insights[0], "Best CTR: 8.00%")
}

func TestPerformanceInsights_CVROnlyCountsAsRecorded(t *testing.T) {
	// Metrics other than CTR mark a variant as recorded, but without CTRs
	// on both sides no lift is computed.
	items := []types.VariantWithMeta{
		itemWith("a", "Save 50 hours", "body"),
		itemWith("b", "Plain", "body"),
	}
	perf := map[string]types.PerformanceMetrics{
		"a": {CVR: f(2)},
		"b": {CVR: f(1)},
	}
	assert.Empty(t, PerformanceInsights(items, perf))
}

func TestChecklist_Counts(t *testing.T) {
	items := []types.VariantWithMeta{
		{Variant: types.Variant{
			Headlines:   []string{"Join 2000 customers", "Second hook"},
			PrimaryText: "Switch from the old tool today.",
			CTA:         "Start free",
		}},
		{Variant: types.Variant{
			Headlines:   []string{"Save time"},
			PrimaryText: "Automatically faster builds.",
			CTA:         "start free",
		}},
	}

	result := Checklist(items)
	assert.Equal(t, 3, result.Hooks)
	assert.Equal(t, 1, result.SocialProof)
	assert.Equal(t, 1, result.Urgency)
	assert.Equal(t, 1, result.CTAVariants, "CTA comparison is case-insensitive and trimmed")
	assert.GreaterOrEqual(t, result.AngleSignals, 3)
}
