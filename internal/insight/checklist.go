package insight

import (
	"regexp"
	"strings"

	"adforge/internal/types"
)

// Checklist angle signals. Distinct regexes from the feature correlator:
// these cover coverage of the set, not CTR correlation.
var (
	checkSocialProof = regexp.MustCompile(`(?i)\b(\+?\d{2,}|\d+%|reviews?|customers?|users?|cases)\b`)
	checkUrgency     = regexp.MustCompile(`(?i)\b(now|today|tomorrow|limited|last|slots?|deadline)\b`)
	checkCompetitor  = regexp.MustCompile(`(?i)\b(old tool|alternative|vs|better than|switch|migrate)\b`)
	checkEfficiency  = regexp.MustCompile(`(?i)\b(faster|less time|automatic(ally)?|efficient|save time)\b`)
)

// ChecklistResult counts how well a variant set covers the basics: enough
// hooks, enough proof, enough urgency, and more than one angle.
type ChecklistResult struct {
	Hooks        int
	SocialProof  int
	Urgency      int
	CTAVariants  int
	AngleSignals int
}

// Checklist computes coverage counts over the live collection.
func Checklist(items []types.VariantWithMeta) ChecklistResult {
	var result ChecklistResult
	ctas := map[string]struct{}{}
	angles := map[string]struct{}{}

	for _, item := range items {
		v := item.Variant
		result.Hooks += len(v.Headlines)

		blob := v.TextBlob()
		if checkSocialProof.MatchString(blob) {
			result.SocialProof++
			angles["socialProof"] = struct{}{}
		}
		if checkUrgency.MatchString(blob) {
			result.Urgency++
			angles["fomo"] = struct{}{}
		}
		if checkCompetitor.MatchString(blob) {
			angles["competitor"] = struct{}{}
		}
		if checkEfficiency.MatchString(blob) {
			angles["efficiency"] = struct{}{}
		}

		if cta := strings.ToLower(strings.TrimSpace(v.CTA)); cta != "" {
			ctas[cta] = struct{}{}
		}
	}

	result.CTAVariants = len(ctas)
	result.AngleSignals = len(angles)
	return result
}
