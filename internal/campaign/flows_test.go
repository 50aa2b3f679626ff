package campaign

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adforge/internal/history"
	"adforge/internal/prompt"
	"adforge/internal/types"
)

// memStorage is an in-memory Storage that records what was saved.
type memStorage struct {
	settings    *types.Settings
	favorites   []types.FavoriteVariant
	history     []history.Entry
	performance map[string]types.PerformanceMetrics

	historySaves int
}

func (m *memStorage) LoadSettings() types.Settings {
	if m.settings == nil {
		return types.DefaultSettings()
	}
	return *m.settings
}
func (m *memStorage) SaveSettings(s types.Settings) { m.settings = &s }

func (m *memStorage) LoadFavorites() []types.FavoriteVariant  { return m.favorites }
func (m *memStorage) SaveFavorites(f []types.FavoriteVariant) { m.favorites = f }

func (m *memStorage) LoadHistory() []history.Entry { return m.history }
func (m *memStorage) SaveHistory(h []history.Entry) {
	m.history = h
	m.historySaves++
}

func (m *memStorage) LoadPerformance() map[string]types.PerformanceMetrics {
	if m.performance == nil {
		return map[string]types.PerformanceMetrics{}
	}
	return m.performance
}
func (m *memStorage) SavePerformance(p map[string]types.PerformanceMetrics) { m.performance = p }

func TestAuxFlows_RequireActiveBrief(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)

	_, err := o.GenerateHooks(context.Background(), prompt.HookCategory("problem"))
	assert.Error(t, err)
	_, err = o.ExpandAngle(context.Background(), prompt.AngleKey("problemFirst"))
	assert.Error(t, err)
	_, err = o.GenerateNames(context.Background())
	assert.Error(t, err)
	_, err = o.GenerateBlueprint(context.Background())
	assert.Error(t, err)
	assert.Empty(t, client.calls, "aux flows without a brief never reach the model")
}

func TestGenerateHooks(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	client.handler = func(p string) (string, error) {
		return `{"hooks": ["Still reviewing by hand?", "Your pipeline called."]}`, nil
	}
	hooks, err := o.GenerateHooks(context.Background(), prompt.HookCategory("problem"))
	require.NoError(t, err)
	assert.Len(t, hooks, 2)
}

func TestExpandAngle(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	client.handler = func(p string) (string, error) {
		return `{"hooks": ["Tired of slow reviews?"], "primaryText": "Reviews used to take days.", "headline": "Days to minutes"}`, nil
	}
	exp, err := o.ExpandAngle(context.Background(), prompt.AngleKey("problemFirst"))
	require.NoError(t, err)
	assert.Equal(t, "Problem-first", exp.Angle)
	assert.Equal(t, "Days to minutes", exp.Headline)
}

func TestImportBlueprint(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))
	liveBefore := len(o.Items())

	bp := types.CampaignBlueprint{
		Meta: types.MetaBlueprint{
			Retargeting: types.BlueprintVariant{
				Headlines:   []string{"Come back for this"},
				PrimaryText: "You looked at Acme CI last week.",
				CTA:         "Finish signup",
			},
			Conversion: types.BlueprintVariant{
				Headlines:   []string{"Ship twice as fast"},
				PrimaryText: "Acme CI cuts review time in half.",
				CTA:         "Start trial",
			},
		},
		Google: types.GoogleBlueprint{
			Headlines:    []string{"Faster Code Review", "Acme CI"},
			Descriptions: []string{"Cut review time in half with automated checks."},
		},
	}

	added := o.ImportBlueprint(bp)
	require.Len(t, added, 3)
	assert.Equal(t, types.PlatformMeta, added[0].Variant.Platform)
	assert.Equal(t, types.PlatformMeta, added[1].Variant.Platform)
	assert.Equal(t, types.PlatformGoogle, added[2].Variant.Platform)
	for _, it := range added {
		assert.NotEmpty(t, it.Variant.ID)
		assert.Nil(t, it.Score, "imported assets arrive unscored")
	}
	assert.Len(t, o.Items(), liveBefore+3, "existing variants are kept")
}

func TestImportBlueprint_SkipsEmptyPackages(t *testing.T) {
	o := newTestOrchestrator(t, scriptedClient(2))

	added := o.ImportBlueprint(types.CampaignBlueprint{
		Google: types.GoogleBlueprint{Headlines: []string{"Only Google"}},
	})
	require.Len(t, added, 1)
	assert.Equal(t, types.PlatformGoogle, added[0].Variant.Platform)
}

func TestSaveFavorite_IsADeepCopy(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	target := o.Items()[0].Variant.ID
	fav, err := o.SaveFavorite(target, "")
	require.NoError(t, err)
	assert.Equal(t, "Acme CI", fav.Campaign, "empty label falls back to the brief's product")
	assert.Equal(t, "playful", fav.Vibe)

	// Mutating a handed-out snapshot must not reach the frozen copy.
	snapshot := o.Items()
	snapshot[0].Variant.Headlines[0] = "tampered"
	assert.Equal(t, "Headline 1", o.Favorites()[0].Variant.Headlines[0])
}

func TestSaveFavorite_KeepsSuppliedCampaignLabel(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	fav, err := o.SaveFavorite(o.Items()[0].Variant.ID, "Q3 launch")
	require.NoError(t, err)
	assert.Equal(t, "Q3 launch", fav.Campaign)
}

func TestRemoveFavorite(t *testing.T) {
	client := scriptedClient(2)
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	fav, err := o.SaveFavorite(o.Items()[0].Variant.ID, "")
	require.NoError(t, err)
	require.Len(t, o.Favorites(), 1)

	assert.True(t, o.RemoveFavorite(fav.ID))
	assert.Empty(t, o.Favorites())
	assert.False(t, o.RemoveFavorite(fav.ID))
}

func TestAttachPerformance_ReflectsAndSurvives(t *testing.T) {
	client := scriptedClient(2)
	storage := &memStorage{}
	o := New(client, storage, nil, nil)
	o.SetCredential("sk-test")
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	id := o.Items()[0].Variant.ID
	ctr := 3.4
	o.AttachPerformance(map[string]types.PerformanceMetrics{
		id: {CTR: &ctr},
	})

	got := o.Items()[0]
	require.NotNil(t, got.Performance)
	assert.InDelta(t, 3.4, *got.Performance.CTR, 1e-9)

	// Regenerating replaces identities; the recorded metrics stay keyed to
	// the old one and remain in the map.
	b := testBrief()
	b.Vibe = "dry"
	require.NoError(t, o.Generate(context.Background(), b))
	assert.Contains(t, o.Performance(), id)
	assert.Contains(t, storage.performance, id)
}

func TestAttachPerformance_IgnoresEmptyEntries(t *testing.T) {
	o := newTestOrchestrator(t, scriptedClient(2))
	o.AttachPerformance(map[string]types.PerformanceMetrics{
		"ghost": {},
	})
	assert.Empty(t, o.Performance())
}

func TestStorageRestoreAndPersist(t *testing.T) {
	client := scriptedClient(3)
	storage := &memStorage{}

	o := New(client, storage, nil, nil)
	o.SetCredential("sk-test")
	require.NoError(t, o.Generate(context.Background(), testBrief()))
	assert.Equal(t, 1, storage.historySaves)
	require.Len(t, storage.history, 1)

	// A fresh orchestrator restored from the same storage serves the brief
	// from history without touching the network.
	calls := len(client.calls)
	o2 := New(client, storage, nil, nil)
	o2.SetCredential("sk-test")
	require.NoError(t, o2.Generate(context.Background(), testBrief()))
	assert.Equal(t, PhaseSettled, o2.Phase())
	assert.Len(t, client.calls, calls, "restored history still short-circuits generation")
}

func TestUpdateSettings_Persists(t *testing.T) {
	storage := &memStorage{}
	o := New(scriptedClient(2), storage, nil, nil)

	s := o.Settings()
	s.DefaultVibe = "bold"
	o.UpdateSettings(s)

	require.NotNil(t, storage.settings)
	assert.Equal(t, "bold", storage.settings.DefaultVibe)
	assert.Equal(t, "bold", o.Settings().DefaultVibe)
}

func TestChecklistAndDiversityPassThrough(t *testing.T) {
	client := &fakeClient{}
	client.handler = func(p string) (string, error) {
		if strings.Contains(p, "ad variants for the") {
			return `{"variants": [
				{"headlines": ["Save 50 hours"], "primaryText": "Cut review time.", "cta": "Start now"},
				{"headlines": ["A calm pipeline"], "primaryText": "Reviews without the wait.", "cta": "Start now"}
			]}`, nil
		}
		return scoreResponse, nil
	}
	o := newTestOrchestrator(t, client)
	require.NoError(t, o.Generate(context.Background(), testBrief()))

	checklist := o.Checklist()
	assert.Equal(t, 1, checklist.CTAVariants, "identical CTAs count once")
	assert.Equal(t, "", o.CTADiversity(), "two identical CTAs raise no diversity hint")
}
