package insight

import (
	"regexp"

	"adforge/internal/types"
)

// Policy pattern families. These are advisories, not blocks: generation
// always proceeds, the warnings just travel with the variant.
var (
	exaggeratedClaims = regexp.MustCompile(`(?i)\b(best|guaranteed|never|always|100%|perfect|#1)\b`)
	sensitiveTopics   = regexp.MustCompile(`(?i)\b(health|medical|therapy|addiction|investment|crypto|stocks|loan|debt|income|weight loss|BMI|religion|politics)\b`)
	excessiveCaps     = regexp.MustCompile(`[A-Z]{4,}`)
)

// PolicyWarnings scans the concatenation of all textual fields of a variant
// and returns zero or more advisory strings.
func PolicyWarnings(v types.Variant) []string {
	blob := v.TextBlob()

	var warnings []string
	if exaggeratedClaims.MatchString(blob) {
		warnings = append(warnings, `Watch the claims: avoid words like "best", "guaranteed", "never", "always".`)
	}
	if sensitiveTopics.MatchString(blob) {
		warnings = append(warnings, "Sensitive category detected (health/finance/personal attributes): keep the copy careful and factual.")
	}
	if excessiveCaps.MatchString(blob) {
		warnings = append(warnings, "Caps-lock warning: avoid words in all capitals.")
	}
	return warnings
}

// AllWarnings combines length and policy checks; this is what the
// orchestrator attaches to every variant on receipt.
func AllWarnings(v types.Variant) []string {
	return append(LengthWarnings(v), PolicyWarnings(v)...)
}
