// Package brief defines the CampaignBrief value object: the full set of
// user-supplied inputs that seeds every generation request. A brief is
// immutable once a generation cycle starts; late edits produce a new brief.
package brief

import (
	"encoding/json"

	"adforge/internal/types"
)

// Variant count is clamped to this closed range before any prompt is built.
const (
	MinVariants = 3
	MaxVariants = 6
)

// FunnelStage is the campaign objective stage.
type FunnelStage string

const (
	StageAwareness     FunnelStage = "awareness"
	StageConsideration FunnelStage = "consideration"
	StageConversion    FunnelStage = "conversion"
	StageRetention     FunnelStage = "retention"
)

// ActionGoal is the action the ad should drive.
type ActionGoal string

const (
	ActionClick    ActionGoal = "click"
	ActionLead     ActionGoal = "lead"
	ActionTrial    ActionGoal = "trial"
	ActionDemo     ActionGoal = "demo"
	ActionPurchase ActionGoal = "purchase"
)

// AudienceTemperature describes how familiar the audience is with the brand.
type AudienceTemperature string

const (
	AudienceCold     AudienceTemperature = "cold"
	AudienceWarm     AudienceTemperature = "warm"
	AudienceExisting AudienceTemperature = "existing"
)

// CampaignBrief captures all user-supplied campaign inputs. It is the cache
// key for the history cache (full structural equality) and the seed for every
// prompt, so field order and contents must be deterministic.
type CampaignBrief struct {
	Company          string              `json:"company"`
	Product          string              `json:"product"`
	Audience         string              `json:"audience"`
	USP              string              `json:"usp"`
	Differentiator   string              `json:"differentiator"`
	Objections       string              `json:"objections"`
	Tone             string              `json:"tone"`
	Persona          string              `json:"persona"`
	MandatoryPhrases string              `json:"mandatoryPhrases"`
	FunnelStage      FunnelStage         `json:"funnelStage"`
	ActionGoal       ActionGoal          `json:"actionGoal"`
	Temperature      AudienceTemperature `json:"temperature"`
	CoreOffer        string              `json:"coreOffer"`
	Platform         types.Platform      `json:"platform"`
	AdFormat         types.AdFormat      `json:"adFormat"`
	AssetDescription string              `json:"assetDescription"`
	Vibe             string              `json:"vibe"`
	Locale           string              `json:"locale"`
	Region           string              `json:"region"`
	VariantCount     int                 `json:"variantCount"`
	Model            string              `json:"model"`
}

// Default returns a brief pre-filled from the given settings. The creative
// fields stay empty; prompt builders render those as "not specified".
func Default(s types.Settings) CampaignBrief {
	return CampaignBrief{
		FunnelStage:  StageAwareness,
		ActionGoal:   ActionClick,
		Temperature:  AudienceCold,
		Platform:     s.DefaultPlatform,
		AdFormat:     types.FormatText,
		Vibe:         s.DefaultVibe,
		Locale:       s.Locale,
		VariantCount: s.VariantCount,
		Model:        s.DefaultModel,
	}
}

// Normalized returns a copy with the variant count clamped to
// [MinVariants, MaxVariants]. No other field is altered; malformed text
// fields are handled downstream by the prompt builders.
func (b CampaignBrief) Normalized() CampaignBrief {
	if b.VariantCount < MinVariants {
		b.VariantCount = MinVariants
	}
	if b.VariantCount > MaxVariants {
		b.VariantCount = MaxVariants
	}
	return b
}

// CacheKey returns the canonical serialization of the brief. Struct field
// order is fixed at compile time, so identical briefs always serialize to
// identical bytes regardless of how they were constructed.
func (b CampaignBrief) CacheKey() string {
	data, err := json.Marshal(b)
	if err != nil {
		// All fields are plain strings and ints; Marshal cannot fail here.
		return ""
	}
	return string(data)
}
