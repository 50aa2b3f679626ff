package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"adforge/internal/brief"
	"adforge/internal/history"
	"adforge/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "adforge.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings_DefaultWhenEmpty(t *testing.T) {
	s := openTestStore(t)

	got := s.LoadSettings()
	assert.Equal(t, types.DefaultSettings(), got)
}

func TestSettings_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := types.DefaultSettings()
	want.DefaultPlatform = types.PlatformLinkedIn
	want.VariantCount = 6
	s.SaveSettings(want)

	assert.Equal(t, want, s.LoadSettings())
}

func TestSettings_PartialBlobKeepsDefaults(t *testing.T) {
	s := openTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put(slotKey, []byte(`{"defaultVibe":"bold"}`))
	})
	require.NoError(t, err)

	got := s.LoadSettings()
	assert.Equal(t, "bold", got.DefaultVibe)
	assert.Equal(t, types.DefaultSettings().DefaultPlatform, got.DefaultPlatform)
	assert.Equal(t, types.DefaultSettings().VariantCount, got.VariantCount)
}

func TestSettings_CorruptBlobFallsBackToDefault(t *testing.T) {
	s := openTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put(slotKey, []byte(`{not json`))
	})
	require.NoError(t, err)

	assert.Equal(t, types.DefaultSettings(), s.LoadSettings())
}

func TestFavorites_RoundTripAndOverwrite(t *testing.T) {
	s := openTestStore(t)

	first := []types.FavoriteVariant{{
		ID:       "fav-a",
		Campaign: "Acme launch",
		Platform: types.PlatformMeta,
		Vibe:     "playful",
		Variant:  types.Variant{ID: "a", Platform: types.PlatformMeta, Headlines: []string{"One"}, PrimaryText: "Body", CTA: "Go"},
		SavedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}}
	s.SaveFavorites(first)
	assert.Equal(t, first, s.LoadFavorites())

	// Wholesale overwrite, not append.
	second := []types.FavoriteVariant{{
		ID:       "fav-b",
		Campaign: "Acme launch",
		Platform: types.PlatformGoogle,
		Vibe:     "dry",
		Variant:  types.Variant{ID: "b", Platform: types.PlatformGoogle, Headlines: []string{"Two"}, PrimaryText: "Other", CTA: "Try"},
		SavedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}}
	s.SaveFavorites(second)
	assert.Equal(t, second, s.LoadFavorites())
}

func TestFavorites_CorruptSlotReturnsEmpty(t *testing.T) {
	s := openTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Put(slotKey, []byte(`42`))
	})
	require.NoError(t, err)

	assert.Empty(t, s.LoadFavorites())
}

func TestHistory_RoundTripTruncatesToBound(t *testing.T) {
	s := openTestStore(t)

	entries := make([]history.Entry, history.MaxEntries+5)
	for i := range entries {
		entries[i] = history.Entry{
			ID:    "e",
			Brief: brief.CampaignBrief{Product: "p", Platform: types.PlatformMeta},
		}
	}
	s.SaveHistory(entries)

	got := s.LoadHistory()
	assert.Len(t, got, history.MaxEntries)
}

func TestPerformance_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	ctr := 4.2
	want := map[string]types.PerformanceMetrics{
		"variant-1": {CTR: &ctr},
	}
	s.SavePerformance(want)

	got := s.LoadPerformance()
	require.Contains(t, got, "variant-1")
	require.NotNil(t, got["variant-1"].CTR)
	assert.InDelta(t, 4.2, *got["variant-1"].CTR, 1e-9)
}

func TestPerformance_EmptySlotGivesEmptyMap(t *testing.T) {
	s := openTestStore(t)

	got := s.LoadPerformance()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlotsAreIndependent(t *testing.T) {
	s := openTestStore(t)

	s.SaveSettings(types.Settings{Locale: "en-GB", DefaultPlatform: types.PlatformX, DefaultVibe: "dry", VariantCount: 3, DefaultModel: "gpt-4o"})

	// A corrupt favorites slot must not disturb the others.
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFavorites).Put(slotKey, []byte(`{broken`))
	})
	require.NoError(t, err)

	assert.Empty(t, s.LoadFavorites())
	assert.Equal(t, "en-GB", s.LoadSettings().Locale)
}

func TestStoredBlobIsPlainJSON(t *testing.T) {
	s := openTestStore(t)
	s.SaveSettings(types.DefaultSettings())

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw = append([]byte(nil), tx.Bucket(bucketSettings).Get(slotKey)...)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}
