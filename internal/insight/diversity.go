package insight

import (
	"fmt"
	"strings"

	"adforge/internal/types"
)

// CTADiversityHint counts distinct, case-insensitive, trimmed CTA strings
// across the live collection and returns one advisory once the count
// exceeds 2, with stronger wording once it exceeds 3. An empty string means
// no advisory.
func CTADiversityHint(items []types.VariantWithMeta) string {
	unique := map[string]struct{}{}
	for _, item := range items {
		cta := strings.ToLower(strings.TrimSpace(item.Variant.CTA))
		if cta == "" {
			continue
		}
		unique[cta] = struct{}{}
	}

	switch n := len(unique); {
	case n > 3:
		return fmt.Sprintf("You are using %d different CTAs; cut back to 1-2 for consistency.", n)
	case n > 2:
		return fmt.Sprintf("You are using %d CTAs; try at most 2 per set.", n)
	default:
		return ""
	}
}
