// Package prompt constructs the instruction text sent for each model
// operation. Builders are pure functions of (brief, operation parameters):
// identical inputs yield byte-identical output, which is what makes the
// history cache meaningful and lets tests assert exact prompts. Builders
// never perform I/O and never fail; malformed brief fields are rendered as
// "not specified" placeholders.
package prompt

import (
	"fmt"
	"strings"

	"adforge/internal/brief"
	"adforge/internal/types"
)

// StrictJSONSuffix is appended by the one-shot reformat resubmission after
// the model returned something that did not parse.
const StrictJSONSuffix = "\n\nIMPORTANT: Respond with a single valid JSON object only. No markdown fences, no commentary, no text outside the JSON."

const notSpecified = "not specified"

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return strings.TrimSpace(s)
}

// lengthInstruction renders the platform's character ceilings as guidance.
// Actual enforcement happens downstream in the insight package; the prompt
// only steers the model.
func lengthInstruction(p types.Platform) string {
	switch p {
	case types.PlatformMeta, types.PlatformInstagram:
		return "Keep primary text under 125 characters, each headline under 40, and the description under 30."
	case types.PlatformGoogle:
		return "Keep each headline under 30 characters and the description under 90."
	case types.PlatformLinkedIn:
		return "Keep primary text under 150 characters and each headline under 70."
	case types.PlatformX:
		return "Keep primary text under 280 characters."
	default:
		return "Keep all copy concise."
	}
}

// formatInstruction renders the ad-format guidance branch.
func formatInstruction(f types.AdFormat, assetDescription string) string {
	switch f {
	case types.FormatImage:
		return fmt.Sprintf("The copy accompanies a single image (%s); reference the visual, do not describe it.", orPlaceholder(assetDescription))
	case types.FormatCarousel:
		return fmt.Sprintf("The copy accompanies a carousel (%s); each headline should work as one card.", orPlaceholder(assetDescription))
	case types.FormatVideo:
		return fmt.Sprintf("The copy accompanies a video (%s); the primary text must hook before the play button.", orPlaceholder(assetDescription))
	default:
		return "Text-only ad: the copy itself carries the entire message."
	}
}

// briefBlock renders the shared campaign context used by every builder.
func briefBlock(b brief.CampaignBrief) string {
	var sb strings.Builder
	sb.WriteString("Campaign brief:\n")
	fmt.Fprintf(&sb, "- Company: %s\n", orPlaceholder(b.Company))
	fmt.Fprintf(&sb, "- Product: %s\n", orPlaceholder(b.Product))
	fmt.Fprintf(&sb, "- Audience: %s\n", orPlaceholder(b.Audience))
	fmt.Fprintf(&sb, "- USP: %s\n", orPlaceholder(b.USP))
	fmt.Fprintf(&sb, "- Differentiator: %s\n", orPlaceholder(b.Differentiator))
	fmt.Fprintf(&sb, "- Objections to neutralize: %s\n", orPlaceholder(b.Objections))
	fmt.Fprintf(&sb, "- Tone of voice: %s\n", orPlaceholder(b.Tone))
	fmt.Fprintf(&sb, "- Persona: %s\n", orPlaceholder(b.Persona))
	fmt.Fprintf(&sb, "- Mandatory phrases: %s\n", orPlaceholder(b.MandatoryPhrases))
	fmt.Fprintf(&sb, "- Funnel stage: %s\n", orPlaceholder(string(b.FunnelStage)))
	fmt.Fprintf(&sb, "- Action goal: %s\n", orPlaceholder(string(b.ActionGoal)))
	fmt.Fprintf(&sb, "- Audience temperature: %s\n", orPlaceholder(string(b.Temperature)))
	fmt.Fprintf(&sb, "- Core offer: %s\n", orPlaceholder(b.CoreOffer))
	fmt.Fprintf(&sb, "- Platform: %s\n", orPlaceholder(string(b.Platform)))
	fmt.Fprintf(&sb, "- Creative vibe: %s\n", orPlaceholder(b.Vibe))
	fmt.Fprintf(&sb, "- Language: %s\n", orPlaceholder(b.Locale))
	fmt.Fprintf(&sb, "- Region: %s\n", orPlaceholder(b.Region))
	return sb.String()
}

// Generate builds the prompt for the main generation operation.
func Generate(b brief.CampaignBrief) string {
	b = b.Normalized()
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a senior performance-marketing copywriter. Write %d distinct ad variants for the %s platform.\n\n", b.VariantCount, orPlaceholder(string(b.Platform)))
	sb.WriteString(briefBlock(b))
	sb.WriteString("\n")
	sb.WriteString(lengthInstruction(b.Platform))
	sb.WriteString("\n")
	sb.WriteString(formatInstruction(b.AdFormat, b.AssetDescription))
	sb.WriteString("\n\nRespond as JSON: {\"variants\": [{\"headlines\": [string], \"primaryText\": string, \"description\": string, \"cta\": string, \"notes\": string}], \"advice\": [string], \"architecture\": {\"hooks\": {\"problems\": [string], \"dreams\": [string], \"objections\": [string], \"urgency\": [string]}, \"propositions\": {\"usps\": [string], \"rtbs\": [string], \"socialProofs\": [string]}, \"angles\": {\"painFirst\": [string], \"dreamFirst\": [string], \"proofFirst\": [string], \"objectionFirst\": [string]}}}")
	return sb.String()
}

// Remix builds the prompt for regenerating one variant under a stylistic
// constraint while preserving its message.
func Remix(b brief.CampaignBrief, v types.Variant, intent types.RemixIntent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rewrite this %s ad to be %s. Preserve the message and the offer; change the wording.\n\n", orPlaceholder(string(v.Platform)), string(intent))
	writeVariantBlock(&sb, v)
	if strings.TrimSpace(b.Persona) != "" {
		fmt.Fprintf(&sb, "\nWrite for this persona: %s\n", strings.TrimSpace(b.Persona))
	}
	sb.WriteString("\n")
	sb.WriteString(lengthInstruction(v.Platform))
	sb.WriteString("\n\nRespond as JSON: {\"variant\": {\"headlines\": [string], \"primaryText\": string, \"description\": string, \"cta\": string, \"notes\": string}}")
	return sb.String()
}

// Score builds the prompt for the scoring operation. The contract names
// every modern metric explicitly so the response matches the current shape.
func Score(b brief.CampaignBrief, v types.Variant) string {
	var sb strings.Builder
	sb.WriteString("Score this ad variant on a 0-100 scale per metric. Be strict; 80+ means ready to ship.\n\n")
	writeVariantBlock(&sb, v)
	fmt.Fprintf(&sb, "\nTarget audience: %s\nAction goal: %s\n", orPlaceholder(b.Audience), orPlaceholder(string(b.ActionGoal)))
	sb.WriteString("\nRespond as JSON: {\"metrics\": {")
	for i, m := range types.Metrics {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: {\"score\": number, \"tip\": string}", string(m))
	}
	sb.WriteString("}, \"total\": number, \"summary\": string, \"overallTip\": string}")
	return sb.String()
}

// ApplyTip builds the prompt for a constrained remix that applies one
// previously issued improvement tip for one named metric.
func ApplyTip(b brief.CampaignBrief, v types.Variant, metric types.Metric, tip string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Improve this ad by applying the following tip for the %q metric. Change only what the tip requires.\n\nTip: %s\n\n", string(metric), orPlaceholder(tip))
	writeVariantBlock(&sb, v)
	sb.WriteString("\n")
	sb.WriteString(lengthInstruction(v.Platform))
	sb.WriteString("\n\nRespond as JSON: {\"variant\": {\"headlines\": [string], \"primaryText\": string, \"description\": string, \"cta\": string, \"notes\": string}}")
	return sb.String()
}

// RemixTip builds the prompt for regenerating only the tip text of one
// metric, leaving all numeric scores untouched.
func RemixTip(v types.Variant, metric types.Metric, currentTip string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write one fresh, concrete improvement tip for the %q metric of this ad. The previous tip was: %s\n\n", string(metric), orPlaceholder(currentTip))
	writeVariantBlock(&sb, v)
	sb.WriteString("\nRespond as JSON: {\"tip\": string}")
	return sb.String()
}

// Angle builds the prompt for the angle-expand flow.
func Angle(b brief.CampaignBrief, angle AngleKey) string {
	opt := AngleByKey(angle)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Expand the campaign into the %q angle: %s\n\n", opt.Label, opt.Helper)
	sb.WriteString(briefBlock(b))
	sb.WriteString("\nDeliver 1-3 hooks, one primary text, and one headline for this angle.")
	sb.WriteString("\n\nRespond as JSON: {\"hooks\": [string], \"primaryText\": string, \"headline\": string}")
	return sb.String()
}

// Hooks builds the prompt for the hook-generate flow.
func Hooks(b brief.CampaignBrief, category HookCategory) string {
	opt := HookByKey(category)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate 5 ad hooks in the %q style: %s\n\n", opt.Label, opt.Helper)
	sb.WriteString(briefBlock(b))
	sb.WriteString("\nRespond as JSON: {\"hooks\": [string]}")
	return sb.String()
}

// Blueprint builds the prompt for the blueprint-generate flow: complete
// Meta and Google RSA asset packages from one brief.
func Blueprint(b brief.CampaignBrief) string {
	var sb strings.Builder
	sb.WriteString("Build a complete campaign blueprint with a Meta package and a Google RSA package.\n\n")
	sb.WriteString(briefBlock(b))
	sb.WriteString("\nMeta package: 3 primary texts, 5 headlines, 3 descriptions, one retargeting variant, one conversion variant.")
	sb.WriteString("\nGoogle RSA package: 10 headlines (max 30 chars), 4 descriptions (max 90 chars), 4 callouts, 4 sitelinks, one call extension.")
	sb.WriteString("\n\nRespond as JSON: {\"meta\": {\"primaryTexts\": [string], \"headlines\": [string], \"descriptions\": [string], \"retargeting\": {\"primaryText\": string, \"headlines\": [string], \"description\": string, \"cta\": string}, \"conversion\": {\"primaryText\": string, \"headlines\": [string], \"description\": string, \"cta\": string}}, \"google\": {\"headlines\": [string], \"descriptions\": [string], \"callouts\": [string], \"sitelinks\": [string], \"callExtension\": string}}")
	return sb.String()
}

// Naming builds the prompt for the naming-generate flow.
func Naming(b brief.CampaignBrief) string {
	var sb strings.Builder
	sb.WriteString("Generate 6 ad naming-convention suggestions for this campaign, in the style PLATFORM_GOAL_HOOK-ELEMENT_PROOF_OFFER_vN (example: META_CONV_HOOK-FEATURE_PROOF_OFFER20_v3).\n\n")
	sb.WriteString(briefBlock(b))
	sb.WriteString("\nRespond as JSON: {\"names\": [string]}")
	return sb.String()
}

func writeVariantBlock(sb *strings.Builder, v types.Variant) {
	sb.WriteString("Current variant:\n")
	for i, h := range v.Headlines {
		fmt.Fprintf(sb, "- Headline %d: %s\n", i+1, h)
	}
	fmt.Fprintf(sb, "- Primary text: %s\n", orPlaceholder(v.PrimaryText))
	fmt.Fprintf(sb, "- Description: %s\n", orPlaceholder(v.Description))
	fmt.Fprintf(sb, "- CTA: %s\n", orPlaceholder(v.CTA))
	if strings.TrimSpace(v.Notes) != "" {
		fmt.Fprintf(sb, "- Notes: %s\n", strings.TrimSpace(v.Notes))
	}
}
