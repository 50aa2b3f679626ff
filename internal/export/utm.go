package export

import (
	"fmt"
	"net/url"
	"strings"

	"adforge/internal/types"
)

// UTMPreset carries the per-platform defaults for link tagging.
type UTMPreset struct {
	Source           string
	Medium           string
	CampaignTemplate string
}

// utmPresets covers the platforms with a meaningful paid-traffic preset.
var utmPresets = map[types.Platform]UTMPreset{
	types.PlatformMeta:     {Source: "facebook", Medium: "paid_social", CampaignTemplate: "meta_campaign"},
	types.PlatformGoogle:   {Source: "google", Medium: "cpc", CampaignTemplate: "gads_campaign"},
	types.PlatformLinkedIn: {Source: "linkedin", Medium: "paid_social", CampaignTemplate: "li_campaign"},
}

// UTMPresetFor returns the preset for a platform, falling back to the Meta
// preset for platforms without one.
func UTMPresetFor(p types.Platform) UTMPreset {
	if preset, ok := utmPresets[p]; ok {
		return preset
	}
	return utmPresets[types.PlatformMeta]
}

// BuildUTMURL tags a landing-page URL with utm parameters for a platform.
// Campaign falls back to the preset's template; content and term are only
// appended when set. An existing query string is extended, not replaced.
func BuildUTMURL(baseURL string, platform types.Platform, campaign, content, term string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", fmt.Errorf("destination URL is required")
	}

	preset := UTMPresetFor(platform)
	if strings.TrimSpace(campaign) == "" {
		campaign = preset.CampaignTemplate
	}

	params := []string{
		"utm_source=" + url.QueryEscape(preset.Source),
		"utm_medium=" + url.QueryEscape(preset.Medium),
		"utm_campaign=" + url.QueryEscape(strings.TrimSpace(campaign)),
	}
	if c := strings.TrimSpace(content); c != "" {
		params = append(params, "utm_content="+url.QueryEscape(c))
	}
	if t := strings.TrimSpace(term); t != "" {
		params = append(params, "utm_term="+url.QueryEscape(t))
	}

	separator := "?"
	if strings.Contains(baseURL, "?") {
		separator = "&"
	}
	return baseURL + separator + strings.Join(params, "&"), nil
}
