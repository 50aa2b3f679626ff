package schema

import (
	"time"

	"adforge/internal/types"
)

// The score contract has drifted: older stored scores carry four flat
// numeric metrics on a 0-10 scale with one shared tip, while the current
// contract carries seven object-valued metrics on a 0-100 scale. The two
// shapes are modeled as an explicit union here and reconciled through
// Upgrade; the modern type itself never grows optional legacy fields.

// stalenessNote is appended to tips carried over from a legacy score.
const stalenessNote = " (carried over from an older score; rescore for a current tip)"

// legacySummary replaces a missing summary after a legacy upgrade.
const legacySummary = "Summary unavailable for this older score. Rescore for current insights."

// legacySeeds maps each modern-only metric to the legacy metric whose score
// seeds it during upgrade.
var legacySeeds = map[types.Metric]types.Metric{
	types.MetricHookStrength: types.MetricClarity,
	types.MetricAudienceFit:  types.MetricEmotion,
	types.MetricPlatformFit:  types.MetricCTAStrength,
}

// legacyMetrics is the metric set of the old 4-metric contract.
var legacyMetrics = []types.Metric{
	types.MetricClarity,
	types.MetricEmotion,
	types.MetricDistinctiveness,
	types.MetricCTAStrength,
}

// scoreWire accepts both score shapes. Metrics is set for the modern shape;
// the flat numeric fields are set for the legacy shape.
type scoreWire struct {
	Metrics    map[types.Metric]types.MetricScore `json:"metrics"`
	Total      *float64                           `json:"total"`
	Summary    string                             `json:"summary"`
	OverallTip string                             `json:"overallTip"`

	// Legacy flat shape.
	Clarity         *float64 `json:"clarity"`
	Emotion         *float64 `json:"emotion"`
	Distinctiveness *float64 `json:"distinctiveness"`
	CTAStrength     *float64 `json:"ctaStrength"`
	Tip             string   `json:"tip"`
	UpdatedAt       int64    `json:"updatedAt"`
}

// CoerceScale normalizes one wire score value: any value at or below 10 is
// treated as expressed on a 0-10 scale and multiplied by 10; larger values
// pass through unchanged. Applied exactly once, while decoding, so that an
// already-coerced value of 10 is never inflated again.
func CoerceScale(v float64) int {
	if v <= 10 {
		v *= 10
	}
	return clampScore(int(v))
}

// clampScore bounds a score to the 0-100 contract range.
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// DecodeScore parses a score response or a stored score of either shape and
// returns it upgraded to the current contract.
func DecodeScore(raw string) (*types.VariantScore, error) {
	var wire scoreWire
	if err := ExtractJSON(raw, &wire); err != nil {
		return nil, err
	}
	return reconcile(wire)
}

func reconcile(wire scoreWire) (*types.VariantScore, error) {
	score := &types.VariantScore{
		Metrics:    map[types.Metric]types.MetricScore{},
		Summary:    wire.Summary,
		OverallTip: wire.OverallTip,
	}
	if wire.UpdatedAt > 0 {
		score.UpdatedAt = time.UnixMilli(wire.UpdatedAt)
	}
	if wire.Total != nil {
		score.Total = CoerceScale(*wire.Total)
	}

	switch {
	case len(wire.Metrics) > 0:
		for m, ms := range wire.Metrics {
			ms.Score = CoerceScale(float64(ms.Score))
			score.Metrics[m] = ms
		}

	case wire.Clarity != nil || wire.Emotion != nil || wire.Distinctiveness != nil || wire.CTAStrength != nil:
		flat := map[types.Metric]*float64{
			types.MetricClarity:         wire.Clarity,
			types.MetricEmotion:         wire.Emotion,
			types.MetricDistinctiveness: wire.Distinctiveness,
			types.MetricCTAStrength:     wire.CTAStrength,
		}
		for _, m := range legacyMetrics {
			v := flat[m]
			if v == nil {
				return nil, schemaErrf(string(OpScore), "legacy score is missing metric %q", m)
			}
			score.Metrics[m] = types.MetricScore{Score: CoerceScale(*v), Tip: wire.Tip}
		}
		if score.OverallTip == "" {
			score.OverallTip = wire.Tip
		}

	default:
		return nil, schemaErrf(string(OpScore), "no metrics present in either contract shape")
	}

	upgraded := Upgrade(*score)
	if len(upgraded.Metrics) != len(types.Metrics) {
		return nil, schemaErrf(string(OpScore), "score cannot be reconciled to the current metric set")
	}
	return &upgraded, nil
}

// Upgrade lifts a score to the current contract: every modern metric is
// populated (missing ones seeded from their nearest legacy counterpart,
// reusing that metric's tip with a staleness note) and an absent summary gets
// an explicit placeholder. Values are clamped to 0-100 but never rescaled;
// scale coercion happens once, at decode. Upgrade of an already-modern score
// is the identity on every metric value, so applying it again cannot drift.
func Upgrade(s types.VariantScore) types.VariantScore {
	out := types.VariantScore{
		Metrics:    make(map[types.Metric]types.MetricScore, len(types.Metrics)),
		Total:      clampScore(s.Total),
		Summary:    s.Summary,
		OverallTip: s.OverallTip,
		UpdatedAt:  s.UpdatedAt,
	}

	for m, ms := range s.Metrics {
		ms.Score = clampScore(ms.Score)
		out.Metrics[m] = ms
	}

	for _, m := range types.Metrics {
		if _, ok := out.Metrics[m]; ok {
			continue
		}
		seedMetric, ok := legacySeeds[m]
		if !ok {
			seedMetric = types.MetricClarity
		}
		seed, ok := out.Metrics[seedMetric]
		if !ok {
			continue // reconcile reports this as a SchemaError
		}
		tip := seed.Tip
		if tip != "" {
			tip += stalenessNote
		}
		out.Metrics[m] = types.MetricScore{Score: seed.Score, Tip: tip}
	}

	if out.Summary == "" {
		out.Summary = legacySummary
	}
	return out
}
