package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adforge/internal/insight"
	"adforge/internal/prompt"
	"adforge/internal/schema"
	"adforge/internal/types"
)

// ExpandAngle develops one messaging angle from the catalog into hooks and a
// starter ad. Requires an active brief.
func (o *Orchestrator) ExpandAngle(ctx context.Context, angle prompt.AngleKey) (*types.AngleExpansion, error) {
	if !o.hasBrief {
		return nil, ErrNoBrief
	}
	opt := prompt.AngleByKey(angle)
	return completeAndDecode(ctx, o, schema.OpAngle, prompt.Angle(o.brief, angle), func(raw string) (*types.AngleExpansion, error) {
		return schema.DecodeAngle(raw, opt.Label)
	})
}

// GenerateHooks produces opening hooks for one hook category.
func (o *Orchestrator) GenerateHooks(ctx context.Context, category prompt.HookCategory) ([]string, error) {
	if !o.hasBrief {
		return nil, ErrNoBrief
	}
	return completeAndDecode(ctx, o, schema.OpHooks, prompt.Hooks(o.brief, category), schema.DecodeHooks)
}

// GenerateNames produces campaign-structure name suggestions.
func (o *Orchestrator) GenerateNames(ctx context.Context) ([]string, error) {
	if !o.hasBrief {
		return nil, ErrNoBrief
	}
	return completeAndDecode(ctx, o, schema.OpNaming, prompt.Naming(o.brief), schema.DecodeNames)
}

// GenerateBlueprint produces the platform-ready asset packages for the
// active brief.
func (o *Orchestrator) GenerateBlueprint(ctx context.Context) (*types.CampaignBlueprint, error) {
	if !o.hasBrief {
		return nil, ErrNoBrief
	}
	return completeAndDecode(ctx, o, schema.OpBlueprint, prompt.Blueprint(o.brief), schema.DecodeBlueprint)
}

// ImportBlueprint folds a blueprint's ready-made assets into the live
// collection as ordinary variants: the two Meta packages plus one variant
// assembled from the Google RSA assets. Imported variants arrive unscored,
// with fresh identities and synchronously computed warnings.
func (o *Orchestrator) ImportBlueprint(bp types.CampaignBlueprint) []types.VariantWithMeta {
	var variants []types.Variant

	for _, pkg := range []struct {
		name string
		bv   types.BlueprintVariant
	}{
		{"Retargeting", bp.Meta.Retargeting},
		{"Conversion", bp.Meta.Conversion},
	} {
		if pkg.bv.PrimaryText == "" && len(pkg.bv.Headlines) == 0 {
			continue
		}
		variants = append(variants, types.Variant{
			Platform:    types.PlatformMeta,
			Headlines:   pkg.bv.Headlines,
			PrimaryText: pkg.bv.PrimaryText,
			Description: pkg.bv.Description,
			CTA:         pkg.bv.CTA,
			Notes:       pkg.name + " package from campaign blueprint",
		})
	}

	if len(bp.Google.Headlines) > 0 || len(bp.Google.Descriptions) > 0 {
		var primary string
		if len(bp.Google.Descriptions) > 0 {
			primary = bp.Google.Descriptions[0]
		}
		variants = append(variants, types.Variant{
			Platform:    types.PlatformGoogle,
			Headlines:   bp.Google.Headlines,
			PrimaryText: primary,
			CTA:         "Learn more",
			Notes:       "Assembled from Google RSA assets in campaign blueprint",
		})
	}

	added := make([]types.VariantWithMeta, 0, len(variants))
	for _, v := range variants {
		v.ID = uuid.NewString()
		added = append(added, types.VariantWithMeta{
			Variant:  v,
			Warnings: insight.AllWarnings(v),
			Status:   types.StatusIdle,
		})
	}

	next := make([]types.VariantWithMeta, 0, len(o.items)+len(added))
	next = append(next, o.items...)
	next = append(next, added...)
	o.items = next

	o.logger.Info("imported blueprint assets", zap.Int("variants", len(added)))
	return added
}

// SaveFavorite freezes a deep copy of one variant into the favorites list
// under the given campaign label. An empty label falls back to the active
// brief's product.
func (o *Orchestrator) SaveFavorite(variantID, campaign string) (types.FavoriteVariant, error) {
	item, ok := o.item(variantID)
	if !ok {
		return types.FavoriteVariant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	if campaign == "" {
		campaign = o.brief.Product
	}
	v := item.Variant
	v.Headlines = append([]string(nil), v.Headlines...)
	fav := types.FavoriteVariant{
		ID:       uuid.NewString(),
		Campaign: campaign,
		Platform: v.Platform,
		Vibe:     o.brief.Vibe,
		Variant:  v,
		SavedAt:  time.Now(),
	}
	o.favorites = append([]types.FavoriteVariant{fav}, o.favorites...)
	o.persistFavorites()
	return fav, nil
}

// Favorites returns a copy of the favorites list, newest first.
func (o *Orchestrator) Favorites() []types.FavoriteVariant {
	out := make([]types.FavoriteVariant, len(o.favorites))
	copy(out, o.favorites)
	return out
}

// RemoveFavorite deletes one favorite by its own identity.
func (o *Orchestrator) RemoveFavorite(favoriteID string) bool {
	next := o.favorites[:0:0]
	removed := false
	for _, f := range o.favorites {
		if f.ID == favoriteID {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if removed {
		o.favorites = next
		o.persistFavorites()
	}
	return removed
}

// AttachPerformance merges recorded metrics into the performance map, keyed
// by variant identity, and reflects them on any live variant that matches.
// Metrics for identities not currently in the collection are kept; they
// survive regeneration.
func (o *Orchestrator) AttachPerformance(metrics map[string]types.PerformanceMetrics) {
	for id, perf := range metrics {
		if !perf.HasAny() {
			continue
		}
		o.performance[id] = perf
	}
	next := make([]types.VariantWithMeta, len(o.items))
	for i, it := range o.items {
		if perf, ok := o.performance[it.Variant.ID]; ok {
			p := perf
			it.Performance = &p
		}
		next[i] = it
	}
	o.items = next
	if o.storage != nil {
		o.storage.SavePerformance(o.performance)
	}
}

// Performance returns the full identity-to-metrics map.
func (o *Orchestrator) Performance() map[string]types.PerformanceMetrics {
	out := make(map[string]types.PerformanceMetrics, len(o.performance))
	for k, v := range o.performance {
		out[k] = v
	}
	return out
}

// Insights correlates recorded performance with content features of the live
// collection.
func (o *Orchestrator) Insights() []string {
	return insight.PerformanceInsights(o.items, o.performance)
}

// CTADiversity reports on call-to-action spread across the live collection.
func (o *Orchestrator) CTADiversity() string {
	return insight.CTADiversityHint(o.items)
}

// Checklist summarizes content-feature coverage of the live collection.
func (o *Orchestrator) Checklist() insight.ChecklistResult {
	return insight.Checklist(o.items)
}

func (o *Orchestrator) persistFavorites() {
	if o.storage != nil {
		o.storage.SaveFavorites(o.favorites)
	}
}
