package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adforge/internal/types"
)

func TestPolicyWarnings_ExaggeratedClaims(t *testing.T) {
	v := types.Variant{PrimaryText: "The best tool you will ever use, guaranteed."}
	warnings := PolicyWarnings(v)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "claims")
}

func TestPolicyWarnings_SensitiveCategory(t *testing.T) {
	v := types.Variant{Description: "Consolidate your loan and grow your income."}
	warnings := PolicyWarnings(v)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Sensitive category")
}

func TestPolicyWarnings_ExcessiveCaps(t *testing.T) {
	v := types.Variant{Headlines: []string{"SALE ends soon"}}
	warnings := PolicyWarnings(v)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Caps-lock")
}

func TestPolicyWarnings_ScansNotesToo(t *testing.T) {
	v := types.Variant{
		Headlines:   []string{"Plain headline"},
		PrimaryText: "Plain body.",
		Notes:       "mention crypto upside",
	}
	assert.NotEmpty(t, PolicyWarnings(v))
}

func TestPolicyWarnings_CleanCopy(t *testing.T) {
	v := types.Variant{
		Headlines:   []string{"Ship in minutes"},
		PrimaryText: "A calmer deploy pipeline for small teams.",
		Description: "Try it today.",
		CTA:         "Start free",
	}
	assert.Empty(t, PolicyWarnings(v))
}

func TestPolicyWarnings_ThreeFamiliesStack(t *testing.T) {
	v := types.Variant{PrimaryText: "GUARANTEED best crypto returns NOWW"}
	assert.Len(t, PolicyWarnings(v), 3)
}

func TestCTADiversityHint(t *testing.T) {
	mk := func(ctas ...string) []types.VariantWithMeta {
		items := make([]types.VariantWithMeta, len(ctas))
		for i, c := range ctas {
			items[i] = types.VariantWithMeta{Variant: types.Variant{CTA: c}}
		}
		return items
	}

	// 2 distinct CTAs: no advisory.
	assert.Empty(t, CTADiversityHint(mk("Start free", "start free ", "Book a demo")))

	// 3 distinct: mild advisory.
	hint := CTADiversityHint(mk("Start free", "Book a demo", "Download"))
	assert.Contains(t, hint, "3 CTAs")

	// 4 distinct: stronger wording.
	hint = CTADiversityHint(mk("Start free", "Book a demo", "Download", "Buy now"))
	assert.Contains(t, hint, "4 different CTAs")
	assert.Contains(t, hint, "consistency")
}

func TestCTADiversityHint_IgnoresEmptyCTAs(t *testing.T) {
	items := []types.VariantWithMeta{
		{Variant: types.Variant{CTA: ""}},
		{Variant: types.Variant{CTA: "  "}},
		{Variant: types.Variant{CTA: "Go"}},
	}
	assert.Empty(t, CTADiversityHint(items))
}
