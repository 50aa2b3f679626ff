// Package types provides shared type definitions used across adforge packages.
// This package exists to break import cycles between campaign, insight, and
// store. Types in this package should be foundational data structures with no
// complex dependencies.
package types

import (
	"strings"
	"time"
)

// Platform identifies an ad platform with its own creative constraints.
type Platform string

const (
	PlatformMeta      Platform = "meta"
	PlatformGoogle    Platform = "google"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
	PlatformInstagram Platform = "instagram"
)

// PlatformLabels maps platform keys to display names used in warnings.
var PlatformLabels = map[Platform]string{
	PlatformMeta:      "Meta",
	PlatformGoogle:    "Google Ads",
	PlatformLinkedIn:  "LinkedIn",
	PlatformX:         "X",
	PlatformInstagram: "Instagram",
}

// AdFormat selects the format-specific guidance branch in prompts.
type AdFormat string

const (
	FormatText     AdFormat = "text"
	FormatImage    AdFormat = "image"
	FormatCarousel AdFormat = "carousel"
	FormatVideo    AdFormat = "video"
)

// RemixIntent is a stylistic constraint for regenerating a variant.
type RemixIntent string

const (
	RemixSharper     RemixIntent = "sharper"
	RemixShorter     RemixIntent = "shorter"
	RemixPunchier    RemixIntent = "punchier"
	RemixInformal    RemixIntent = "more informal"
	RemixMorePremium RemixIntent = "more premium"
)

// Variant is one generated ad-copy candidate. The model never supplies a
// stable identity; ID is assigned locally on receipt and is the join key for
// scoring, remix, favoriting, and performance attachment.
type Variant struct {
	ID          string   `json:"id"`
	Platform    Platform `json:"platform"`
	Headlines   []string `json:"headlines"`
	PrimaryText string   `json:"primaryText"`
	Description string   `json:"description"`
	CTA         string   `json:"cta"`
	Notes       string   `json:"notes,omitempty"`
}

// TextBlob concatenates every textual field of the variant. Used by the
// policy scanner and content-feature checks.
func (v Variant) TextBlob() string {
	parts := make([]string, 0, len(v.Headlines)+3)
	parts = append(parts, v.Headlines...)
	for _, s := range []string{v.PrimaryText, v.Description, v.Notes} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// MetricScore pairs a 0-100 score with a natural-language improvement tip.
type MetricScore struct {
	Score int    `json:"score"`
	Tip   string `json:"tip"`
}

// Metric names the fixed set of quality dimensions in the current score
// contract. Older stored scores may carry only the first four.
type Metric string

const (
	MetricClarity         Metric = "clarity"
	MetricEmotion         Metric = "emotion"
	MetricDistinctiveness Metric = "distinctiveness"
	MetricCTAStrength     Metric = "ctaStrength"
	MetricHookStrength    Metric = "hookStrength"
	MetricAudienceFit     Metric = "audienceFit"
	MetricPlatformFit     Metric = "platformFit"
)

// Metrics lists the modern metric set in display order.
var Metrics = []Metric{
	MetricClarity,
	MetricEmotion,
	MetricDistinctiveness,
	MetricCTAStrength,
	MetricHookStrength,
	MetricAudienceFit,
	MetricPlatformFit,
}

// VariantScore is the current score contract: seven named metrics on a 0-100
// scale, an aggregate total, a summary, and one overall tip.
type VariantScore struct {
	Metrics    map[Metric]MetricScore `json:"metrics"`
	Total      int                    `json:"total"`
	Summary    string                 `json:"summary"`
	OverallTip string                 `json:"overallTip"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// ItemStatus tracks the independent asynchronous state of one variant.
// Statuses are keyed by identity and replaced copy-on-write so interleaved
// completions on different identities never corrupt each other.
type ItemStatus int

const (
	StatusIdle ItemStatus = iota
	StatusScoring
	StatusRemixing
	StatusApplyingTip
	StatusRemixingTip
)

// PerformanceMetrics are externally supplied campaign metrics. Every field is
// independently nullable; nil means never recorded.
type PerformanceMetrics struct {
	CTR  *float64 `json:"ctr,omitempty"`
	CVR  *float64 `json:"cvr,omitempty"`
	CPA  *float64 `json:"cpa,omitempty"`
	ROAS *float64 `json:"roas,omitempty"`
}

// HasAny reports whether any metric was recorded.
func (p PerformanceMetrics) HasAny() bool {
	return p.CTR != nil || p.CVR != nil || p.CPA != nil || p.ROAS != nil
}

// VariantWithMeta is a Variant plus everything derived or attached to it.
type VariantWithMeta struct {
	Variant     Variant             `json:"variant"`
	Warnings    []string            `json:"warnings"`
	Score       *VariantScore       `json:"score,omitempty"`
	Status      ItemStatus          `json:"status"`
	Performance *PerformanceMetrics `json:"performance,omitempty"`
}

// FavoriteVariant is a frozen copy of one variant saved by explicit user
// action. Never auto-expired.
type FavoriteVariant struct {
	ID       string    `json:"id"`
	Campaign string    `json:"campaign"`
	Platform Platform  `json:"platform"`
	Vibe     string    `json:"vibe"`
	Variant  Variant   `json:"variant"`
	SavedAt  time.Time `json:"savedAt"`
}

// Settings are the last-used defaults. Singleton slot, overwritten wholesale.
type Settings struct {
	Locale          string   `json:"locale"`
	DefaultPlatform Platform `json:"defaultPlatform"`
	DefaultVibe     string   `json:"defaultVibe"`
	VariantCount    int      `json:"variantCount"`
	DefaultModel    string   `json:"defaultModel"`
}

// DefaultSettings returns the typed default for the settings slot.
func DefaultSettings() Settings {
	return Settings{
		Locale:          "en-US",
		DefaultPlatform: PlatformMeta,
		DefaultVibe:     "playful",
		VariantCount:    4,
		DefaultModel:    "gpt-4o-mini",
	}
}

// ArchitectureHooks groups hook suggestions by psychological entry point.
type ArchitectureHooks struct {
	Problems   []string `json:"problems"`
	Dreams     []string `json:"dreams"`
	Objections []string `json:"objections"`
	Urgency    []string `json:"urgency"`
}

// ArchitecturePropositions groups proposition suggestions.
type ArchitecturePropositions struct {
	USPs         []string `json:"usps"`
	RTBs         []string `json:"rtbs"`
	SocialProofs []string `json:"socialProofs"`
}

// ArchitectureAngles groups angle suggestions by opening move.
type ArchitectureAngles struct {
	PainFirst      []string `json:"painFirst"`
	DreamFirst     []string `json:"dreamFirst"`
	ProofFirst     []string `json:"proofFirst"`
	ObjectionFirst []string `json:"objectionFirst"`
}

// CampaignArchitecture is the optional hooks/propositions/angles breakdown
// returned alongside a generation.
type CampaignArchitecture struct {
	Hooks        ArchitectureHooks        `json:"hooks"`
	Propositions ArchitecturePropositions `json:"propositions"`
	Angles       ArchitectureAngles       `json:"angles"`
}

// BlueprintVariant is one ready-to-import asset inside a blueprint package.
type BlueprintVariant struct {
	PrimaryText string   `json:"primaryText"`
	Headlines   []string `json:"headlines"`
	Description string   `json:"description"`
	CTA         string   `json:"cta"`
}

// MetaBlueprint is the Meta-ready asset package of a campaign blueprint.
type MetaBlueprint struct {
	PrimaryTexts []string         `json:"primaryTexts"`
	Headlines    []string         `json:"headlines"`
	Descriptions []string         `json:"descriptions"`
	Retargeting  BlueprintVariant `json:"retargeting"`
	Conversion   BlueprintVariant `json:"conversion"`
}

// GoogleBlueprint is the Google RSA asset package of a campaign blueprint.
type GoogleBlueprint struct {
	Headlines     []string `json:"headlines"`
	Descriptions  []string `json:"descriptions"`
	Callouts      []string `json:"callouts"`
	Sitelinks     []string `json:"sitelinks"`
	CallExtension string   `json:"callExtension"`
}

// CampaignBlueprint bundles platform-ready asset packages generated from the
// brief.
type CampaignBlueprint struct {
	Meta   MetaBlueprint   `json:"meta"`
	Google GoogleBlueprint `json:"google"`
}

// GenerationResult is the full output of one generation round trip: the
// variants plus campaign-level advice and an optional architecture breakdown.
type GenerationResult struct {
	Variants     []Variant             `json:"variants"`
	Advice       []string              `json:"advice,omitempty"`
	Architecture *CampaignArchitecture `json:"architecture,omitempty"`
}

// AngleExpansion is the auxiliary output of the angle-expand flow.
type AngleExpansion struct {
	Angle       string   `json:"angle"`
	Hooks       []string `json:"hooks"`
	PrimaryText string   `json:"primaryText"`
	Headline    string   `json:"headline"`
}
