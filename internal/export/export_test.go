package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adforge/internal/types"
)

func sampleFavorites() []types.FavoriteVariant {
	return []types.FavoriteVariant{{
		ID:       "fav-1",
		Campaign: "Acme launch, Q3",
		Platform: types.PlatformMeta,
		Vibe:     "playful",
		Variant: types.Variant{
			ID:          "v-1",
			Platform:    types.PlatformMeta,
			Headlines:   []string{"First headline", "Second headline"},
			PrimaryText: "Body with \"quotes\" and, commas.",
			Description: "Short desc",
			CTA:         "Try it",
		},
		SavedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}
}

func TestFavoritesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FavoritesJSON(&buf, sampleFavorites()))

	var decoded []types.FavoriteVariant
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "fav-1", decoded[0].ID)
}

func TestFavoritesJSON_EmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FavoritesJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestFavoritesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FavoritesCSV(&buf, sampleFavorites()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "campaign,platform,vibe,headline,primaryText,description,cta", lines[0])

	// Commas and quotes in cells are escaped, headlines joined with " | ".
	assert.Contains(t, lines[1], `"Acme launch, Q3"`)
	assert.Contains(t, lines[1], "First headline | Second headline")
	assert.Contains(t, lines[1], `"Body with ""quotes"" and, commas."`)
}

func TestFavoritesCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FavoritesCSV(&buf, nil))
	assert.Equal(t, "campaign,platform,vibe,headline,primaryText,description,cta", strings.TrimSpace(buf.String()))
}

func TestBuildUTMURL_MetaPreset(t *testing.T) {
	got, err := BuildUTMURL("https://example.com/landing", types.PlatformMeta, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/landing?utm_source=facebook&utm_medium=paid_social&utm_campaign=meta_campaign", got)
}

func TestBuildUTMURL_GooglePresetWithAllFields(t *testing.T) {
	got, err := BuildUTMURL("https://example.com", types.PlatformGoogle, "summer sale", "headline_a", "ci tool")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com?utm_source=google&utm_medium=cpc&utm_campaign=summer+sale&utm_content=headline_a&utm_term=ci+tool", got)
}

func TestBuildUTMURL_ExtendsExistingQuery(t *testing.T) {
	got, err := BuildUTMURL("https://example.com/p?ref=nav", types.PlatformLinkedIn, "li-launch", "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "https://example.com/p?ref=nav&utm_source=linkedin"))
}

func TestBuildUTMURL_UnknownPlatformFallsBackToMeta(t *testing.T) {
	got, err := BuildUTMURL("https://example.com", types.PlatformX, "", "", "")
	require.NoError(t, err)
	assert.Contains(t, got, "utm_source=facebook")
}

func TestBuildUTMURL_RequiresDestination(t *testing.T) {
	_, err := BuildUTMURL("   ", types.PlatformMeta, "c", "", "")
	assert.Error(t, err)
}
