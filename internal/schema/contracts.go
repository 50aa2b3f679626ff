// Package schema defines the structured shapes expected from each model
// operation and deterministically validates, normalizes, and upgrades
// whatever the model returns. Everything here is a pure function over
// already-decoded data; parsing failures and contract violations are
// signaled through the error taxonomy in errors.go.
package schema

import (
	"encoding/json"
	"strings"

	"adforge/internal/types"
)

// Op names the nine request/response contracts exchanged with the model.
type Op string

const (
	OpGenerate  Op = "generate"
	OpRemix     Op = "remix"
	OpScore     Op = "score"
	OpRemixTip  Op = "remix-tip"
	OpApplyTip  Op = "apply-tip"
	OpAngle     Op = "angle-expand"
	OpHooks     Op = "hook-generate"
	OpBlueprint Op = "blueprint-generate"
	OpNaming    Op = "naming-generate"
)

// wireVariant is the tolerant wire shape for one variant. Older model
// responses carry a single "headline" string where newer ones carry a
// "headlines" array; both are accepted and normalized.
type wireVariant struct {
	Platform    string          `json:"platform"`
	Headlines   []string        `json:"headlines"`
	Headline    json.RawMessage `json:"headline"`
	PrimaryText string          `json:"primaryText"`
	Description string          `json:"description"`
	CTA         string          `json:"cta"`
	Notes       string          `json:"notes"`
}

func (w wireVariant) headlines() []string {
	if len(w.Headlines) > 0 {
		return w.Headlines
	}
	if len(w.Headline) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(w.Headline, &one); err == nil {
		if strings.TrimSpace(one) == "" {
			return nil
		}
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(w.Headline, &many); err == nil {
		return many
	}
	return nil
}

// toVariant validates one wire variant against the contract. The platform
// falls back to the brief's platform when the model omits it.
func (w wireVariant) toVariant(op Op, platform types.Platform) (types.Variant, error) {
	heads := w.headlines()
	if len(heads) == 0 {
		return types.Variant{}, schemaErrf(string(op), "variant is missing a headline")
	}
	if strings.TrimSpace(w.PrimaryText) == "" {
		return types.Variant{}, schemaErrf(string(op), "variant is missing primaryText")
	}
	p := platform
	if w.Platform != "" {
		p = types.Platform(w.Platform)
	}
	return types.Variant{
		Platform:    p,
		Headlines:   heads,
		PrimaryText: w.PrimaryText,
		Description: w.Description,
		CTA:         w.CTA,
		Notes:       w.Notes,
	}, nil
}

type generatePayload struct {
	Variants     []wireVariant               `json:"variants"`
	Advice       []string                    `json:"advice"`
	Architecture *types.CampaignArchitecture `json:"architecture"`
}

// DecodeGeneration parses a generate response into a GenerationResult.
// Variant identities are NOT assigned here; that is the orchestrator's job.
func DecodeGeneration(raw string, platform types.Platform) (*types.GenerationResult, error) {
	var payload generatePayload
	if err := ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Variants) == 0 {
		return nil, schemaErrf(string(OpGenerate), "no variants returned")
	}
	result := &types.GenerationResult{
		Advice:       payload.Advice,
		Architecture: payload.Architecture,
	}
	for _, wv := range payload.Variants {
		v, err := wv.toVariant(OpGenerate, platform)
		if err != nil {
			return nil, err
		}
		result.Variants = append(result.Variants, v)
	}
	return result, nil
}

type singleVariantPayload struct {
	Variant *wireVariant `json:"variant"`
	wireVariant
}

// DecodeVariant parses a remix or apply-tip response into one variant. Both
// `{"variant": {...}}` envelopes and bare variant objects are accepted.
func DecodeVariant(op Op, raw string, platform types.Platform) (types.Variant, error) {
	var payload singleVariantPayload
	if err := ExtractJSON(raw, &payload); err != nil {
		return types.Variant{}, err
	}
	wv := payload.wireVariant
	if payload.Variant != nil {
		wv = *payload.Variant
	}
	return wv.toVariant(op, platform)
}

type tipPayload struct {
	Tip string `json:"tip"`
}

// DecodeTip parses a remix-tip response: replacement tip text for one metric.
func DecodeTip(raw string) (string, error) {
	var payload tipPayload
	if err := ExtractJSON(raw, &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.Tip) == "" {
		return "", schemaErrf(string(OpRemixTip), "missing tip text")
	}
	return strings.TrimSpace(payload.Tip), nil
}

type angleM struct {
	Hooks       []string `json:"hooks"`
	PrimaryText string   `json:"primaryText"`
	Headline    string   `json:"headline"`
}

// DecodeAngle parses an angle-expand response.
func DecodeAngle(raw, angle string) (*types.AngleExpansion, error) {
	var payload angleM
	if err := ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Hooks) == 0 && payload.PrimaryText == "" {
		return nil, schemaErrf(string(OpAngle), "neither hooks nor primaryText returned")
	}
	return &types.AngleExpansion{
		Angle:       angle,
		Hooks:       payload.Hooks,
		PrimaryText: payload.PrimaryText,
		Headline:    payload.Headline,
	}, nil
}

type stringListPayload struct {
	Hooks []string `json:"hooks"`
	Names []string `json:"names"`
}

// DecodeHooks parses a hook-generate response.
func DecodeHooks(raw string) ([]string, error) {
	var payload stringListPayload
	if err := ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Hooks) == 0 {
		return nil, schemaErrf(string(OpHooks), "no hooks returned")
	}
	return payload.Hooks, nil
}

// DecodeNames parses a naming-generate response.
func DecodeNames(raw string) ([]string, error) {
	var payload stringListPayload
	if err := ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Names) == 0 {
		return nil, schemaErrf(string(OpNaming), "no names returned")
	}
	return payload.Names, nil
}

// DecodeBlueprint parses a blueprint-generate response.
func DecodeBlueprint(raw string) (*types.CampaignBlueprint, error) {
	var payload types.CampaignBlueprint
	if err := ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Meta.PrimaryTexts) == 0 && len(payload.Google.Headlines) == 0 {
		return nil, schemaErrf(string(OpBlueprint), "blueprint has neither a meta nor a google package")
	}
	return &payload, nil
}
