// Package insight holds the deterministic, synchronous analyzers that run
// over generated variants: platform length limits, content-policy patterns,
// CTA diversity, the performance-lift correlator, and the variant checklist.
// Nothing here performs I/O or blocks.
package insight

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"adforge/internal/types"
)

// FieldLimits holds the character ceilings for one platform. A zero value
// means the platform imposes no ceiling on that field.
type FieldLimits struct {
	PrimaryText int
	Headline    int
	Description int
}

// PlatformLimits maps each platform to its creative character ceilings.
var PlatformLimits = map[types.Platform]FieldLimits{
	types.PlatformMeta:      {PrimaryText: 125, Headline: 40, Description: 30},
	types.PlatformGoogle:    {Headline: 30, Description: 90},
	types.PlatformLinkedIn:  {PrimaryText: 150, Headline: 70},
	types.PlatformX:         {PrimaryText: 280},
	types.PlatformInstagram: {PrimaryText: 125, Headline: 40},
}

// characters counts the trimmed length of a field in runes; leading and
// trailing whitespace never counts against a ceiling.
func characters(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// LengthWarnings checks a variant's fields against its platform's ceilings
// and returns one human-readable warning per violated field. Multiple
// headlines are checked independently and indexed in the warning text.
func LengthWarnings(v types.Variant) []string {
	limits, ok := PlatformLimits[v.Platform]
	if !ok {
		return nil
	}
	label := types.PlatformLabels[v.Platform]

	var warnings []string
	if limits.PrimaryText > 0 && characters(v.PrimaryText) > limits.PrimaryText {
		warnings = append(warnings, fmt.Sprintf("%s: primary text > %d characters.", label, limits.PrimaryText))
	}
	if limits.Headline > 0 {
		for i, h := range v.Headlines {
			if characters(h) > limits.Headline {
				field := "headline"
				if len(v.Headlines) > 1 {
					field = fmt.Sprintf("headline %d", i+1)
				}
				warnings = append(warnings, fmt.Sprintf("%s: %s > %d characters.", label, field, limits.Headline))
			}
		}
	}
	if limits.Description > 0 && characters(v.Description) > limits.Description {
		warnings = append(warnings, fmt.Sprintf("%s: description > %d characters.", label, limits.Description))
	}
	return warnings
}

// FieldCharInfo reports how close one field sits to its character
// ceiling, for display alongside the copy.
type FieldCharInfo struct {
	Field string
	Label string
	Value string
	Count int
	Limit int // 0 means no ceiling
	Index int // headline index, 0-based
}

// CharInfo returns per-field character counts and ceilings for a variant.
func CharInfo(v types.Variant) []FieldCharInfo {
	limits := PlatformLimits[v.Platform]
	result := []FieldCharInfo{{
		Field: "primaryText",
		Label: "Primary text",
		Value: v.PrimaryText,
		Count: characters(v.PrimaryText),
		Limit: limits.PrimaryText,
	}}
	for i, h := range v.Headlines {
		label := "Headline"
		if len(v.Headlines) > 1 {
			label = fmt.Sprintf("Headline %d", i+1)
		}
		result = append(result, FieldCharInfo{
			Field: "headline",
			Label: label,
			Value: h,
			Count: characters(h),
			Limit: limits.Headline,
			Index: i,
		})
	}
	result = append(result, FieldCharInfo{
		Field: "description",
		Label: "Description",
		Value: v.Description,
		Count: characters(v.Description),
		Limit: limits.Description,
	})
	return result
}
