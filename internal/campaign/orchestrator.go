// Package campaign implements the generation orchestrator: the state machine
// that turns a campaign brief into scored, annotated variants, and the single
// mutation point for the live collection.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adforge/internal/brief"
	"adforge/internal/completion"
	"adforge/internal/history"
	"adforge/internal/insight"
	"adforge/internal/metrics"
	"adforge/internal/prompt"
	"adforge/internal/schema"
	"adforge/internal/types"
)

// ErrUnknownVariant is returned when an identity is not in the live
// collection.
var ErrUnknownVariant = errors.New("unknown variant")

// ErrNoBrief is returned by flows that need a submitted brief.
var ErrNoBrief = errors.New("no active brief; generate first")

// ErrNoReformat is returned by Reformat when no failed generation is awaiting
// the strict-JSON resubmission.
var ErrNoReformat = errors.New("no failed generation awaiting reformat")

// Phase is the orchestrator's generation state. Only one generation flow runs
// at a time; sub-item work is tracked per variant via ItemStatus instead.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseSubmitting    Phase = "submitting"
	PhaseCacheHit      Phase = "cache_hit"
	PhaseAwaitingModel Phase = "awaiting_model"
	PhaseNormalizing   Phase = "normalizing"
	PhaseScoringEach   Phase = "scoring_each"
	PhaseSettled       Phase = "settled"
	PhaseFailed        Phase = "failed"
)

// Storage is the slice of the persistent store the orchestrator needs. A nil
// Storage keeps everything in memory for the life of the process.
type Storage interface {
	LoadSettings() types.Settings
	SaveSettings(types.Settings)
	LoadFavorites() []types.FavoriteVariant
	SaveFavorites([]types.FavoriteVariant)
	LoadHistory() []history.Entry
	SaveHistory([]history.Entry)
	LoadPerformance() map[string]types.PerformanceMetrics
	SavePerformance(map[string]types.PerformanceMetrics)
}

// Orchestrator owns the live variant collection and every model-facing flow.
// It is not safe for concurrent use; callers serialize operations, which is
// what both the CLI and the HTTP layer do.
type Orchestrator struct {
	client  completion.Client
	storage Storage
	logger  *zap.Logger
	metrics *metrics.Metrics

	// credential lives only in memory for the session. Never persisted.
	credential string

	phase        Phase
	brief        brief.CampaignBrief
	hasBrief     bool
	items        []types.VariantWithMeta
	advice       []string
	architecture *types.CampaignArchitecture

	// reformat is the pending one-shot resubmission after a generation
	// whose response carried no parsable JSON. Nil means none is offered.
	reformat *pendingReformat

	cache       *history.Cache
	favorites   []types.FavoriteVariant
	performance map[string]types.PerformanceMetrics
	settings    types.Settings
}

// pendingReformat captures what a strict-JSON resubmission needs: the brief
// and the exact prompt of the failed generation.
type pendingReformat struct {
	brief      brief.CampaignBrief
	promptText string
}

// New creates an orchestrator, restoring history, favorites, performance, and
// settings from storage when one is supplied.
func New(client completion.Client, storage Storage, logger *zap.Logger, m *metrics.Metrics) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	o := &Orchestrator{
		client:      client,
		storage:     storage,
		logger:      logger,
		metrics:     m,
		phase:       PhaseIdle,
		cache:       history.New(),
		performance: map[string]types.PerformanceMetrics{},
		settings:    types.DefaultSettings(),
	}
	if storage != nil {
		o.cache = history.Restore(storage.LoadHistory())
		o.favorites = storage.LoadFavorites()
		o.performance = storage.LoadPerformance()
		o.settings = storage.LoadSettings()
	}
	return o
}

// SetCredential installs the session credential.
func (o *Orchestrator) SetCredential(credential string) {
	o.credential = credential
}

// ClearCredential drops the session credential.
func (o *Orchestrator) ClearCredential() {
	o.credential = ""
}

// HasCredential reports whether a session credential is installed.
func (o *Orchestrator) HasCredential() bool {
	return o.credential != ""
}

// Phase returns the current generation phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// SeedBrief installs a brief as the active one without generating. The
// auxiliary flows only need the campaign context, not a variant collection.
func (o *Orchestrator) SeedBrief(b brief.CampaignBrief) {
	o.brief = b.Normalized()
	o.hasBrief = true
}

// Brief returns the active brief and whether one has been submitted.
func (o *Orchestrator) Brief() (brief.CampaignBrief, bool) {
	return o.brief, o.hasBrief
}

// Items returns a copy of the live collection.
func (o *Orchestrator) Items() []types.VariantWithMeta {
	out := make([]types.VariantWithMeta, len(o.items))
	copy(out, o.items)
	return out
}

// Advice returns the campaign-level advice from the last generation.
func (o *Orchestrator) Advice() []string {
	return o.advice
}

// Architecture returns the campaign architecture from the last generation, if
// the model supplied one.
func (o *Orchestrator) Architecture() *types.CampaignArchitecture {
	return o.architecture
}

// History returns the cached entries, newest first.
func (o *Orchestrator) History() []history.Entry {
	return o.cache.Entries()
}

// Settings returns the current defaults.
func (o *Orchestrator) Settings() types.Settings {
	return o.settings
}

// UpdateSettings overwrites the defaults and persists them.
func (o *Orchestrator) UpdateSettings(s types.Settings) {
	o.settings = s
	if o.storage != nil {
		o.storage.SaveSettings(s)
	}
}

// model resolves the model identifier for the active brief.
func (o *Orchestrator) model() string {
	if o.hasBrief && o.brief.Model != "" {
		return o.brief.Model
	}
	return o.settings.DefaultModel
}

// complete performs one classified, metered model round trip.
func (o *Orchestrator) complete(ctx context.Context, op schema.Op, promptText string) (string, error) {
	if o.credential == "" {
		return "", schema.ErrCredentialMissing
	}
	o.metrics.ModelCallsTotal.WithLabelValues(string(op)).Inc()
	start := time.Now()
	raw, err := o.client.Complete(ctx, promptText, o.model(), o.credential)
	o.metrics.ModelCallDurationSeconds.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	if err != nil {
		var te *schema.TransportError
		if errors.As(err, &te) {
			o.metrics.TransportErrorsTotal.Inc()
		}
		return "", err
	}
	return raw, nil
}

// completeAndDecode runs one round trip and decodes it with decode. Nothing
// is ever resubmitted here; an unparsable response is counted and surfaced,
// and only the generation flow offers a follow-up (see Reformat).
func completeAndDecode[T any](ctx context.Context, o *Orchestrator, op schema.Op, promptText string, decode func(string) (T, error)) (T, error) {
	var zero T
	raw, err := o.complete(ctx, op, promptText)
	if err != nil {
		return zero, err
	}
	out, err := decode(raw)
	if err != nil {
		var invalid *schema.InvalidModelOutputError
		if errors.As(err, &invalid) {
			o.metrics.InvalidOutputTotal.Inc()
			o.logger.Warn("model output unparsable", zap.String("op", string(op)))
		}
		return zero, err
	}
	return out, nil
}

// Generate runs the full generation flow for a brief. On return the phase is
// Settled or Failed; per-item scoring failures do not fail the flow. When the
// model reply carries no parsable JSON the flow fails and a one-shot Reformat
// becomes available; nothing is resubmitted without that explicit call.
func (o *Orchestrator) Generate(ctx context.Context, b brief.CampaignBrief) error {
	o.reformat = nil
	if o.credential == "" {
		o.phase = PhaseFailed
		return schema.ErrCredentialMissing
	}

	b = b.Normalized()
	o.phase = PhaseSubmitting
	o.brief = b
	o.hasBrief = true

	if entry, ok := o.cache.Lookup(b); ok {
		o.phase = PhaseCacheHit
		o.metrics.CacheHitsTotal.Inc()
		o.logger.Info("serving generation from history", zap.String("entry", entry.ID))
		o.adoptResult(entry.Result)
		o.phase = PhaseSettled
		o.metrics.GenerationsTotal.WithLabelValues("cache_hit").Inc()
		return nil
	}
	o.metrics.CacheMissesTotal.Inc()

	o.phase = PhaseAwaitingModel
	promptText := prompt.Generate(b)
	result, err := completeAndDecode(ctx, o, schema.OpGenerate, promptText, func(raw string) (*types.GenerationResult, error) {
		return schema.DecodeGeneration(raw, b.Platform)
	})
	if err != nil {
		o.phase = PhaseFailed
		o.metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		var invalid *schema.InvalidModelOutputError
		if errors.As(err, &invalid) {
			o.reformat = &pendingReformat{brief: b, promptText: promptText}
			o.logger.Info("strict-JSON resubmission available for failed generation")
		}
		return err
	}

	o.settleGeneration(ctx, b, *result)
	return nil
}

// CanReformat reports whether the last generation failed on unparsable model
// output and its one-shot resubmission has not been used yet.
func (o *Orchestrator) CanReformat() bool {
	return o.reformat != nil
}

// Reformat resubmits the last failed generation prompt exactly once, with the
// strict-JSON instruction appended. The offer is consumed whether or not the
// resubmission succeeds; a second unparsable reply is final.
func (o *Orchestrator) Reformat(ctx context.Context) error {
	pending := o.reformat
	if pending == nil {
		return ErrNoReformat
	}
	o.reformat = nil
	o.metrics.ReformatsTotal.Inc()
	o.logger.Info("resubmitting generation with strict-JSON instruction")

	o.phase = PhaseAwaitingModel
	result, err := completeAndDecode(ctx, o, schema.OpGenerate, pending.promptText+prompt.StrictJSONSuffix, func(raw string) (*types.GenerationResult, error) {
		return schema.DecodeGeneration(raw, pending.brief.Platform)
	})
	if err != nil {
		o.phase = PhaseFailed
		o.metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		return err
	}

	o.settleGeneration(ctx, pending.brief, *result)
	return nil
}

// settleGeneration adopts a decoded generation result: normalize, cache,
// persist, score each item, settle.
func (o *Orchestrator) settleGeneration(ctx context.Context, b brief.CampaignBrief, result types.GenerationResult) {
	o.phase = PhaseNormalizing
	o.adoptResult(result)
	o.cache.Insert(b, result)
	o.persistHistory()

	o.phase = PhaseScoringEach
	o.scoreEach(ctx)

	o.phase = PhaseSettled
	o.metrics.GenerationsTotal.WithLabelValues("settled").Inc()
}

// adoptResult replaces the live collection with the result's variants. Every
// variant gets a fresh identity and synchronously computed warnings; cached
// results are never served with their original identities.
func (o *Orchestrator) adoptResult(result types.GenerationResult) {
	items := make([]types.VariantWithMeta, 0, len(result.Variants))
	for _, v := range result.Variants {
		v.ID = uuid.NewString()
		if v.Platform == "" {
			v.Platform = o.brief.Platform
		}
		items = append(items, types.VariantWithMeta{
			Variant:  v,
			Warnings: insight.AllWarnings(v),
			Status:   types.StatusIdle,
		})
	}
	o.items = items
	o.advice = result.Advice
	o.architecture = result.Architecture
}

// scoreEach scores the collection sequentially. A failure on one variant is
// logged and skipped; the remaining variants are still scored.
func (o *Orchestrator) scoreEach(ctx context.Context) {
	for _, item := range o.Items() {
		id := item.Variant.ID
		o.setStatus(id, types.StatusScoring)
		score, err := o.scoreVariant(ctx, item.Variant)
		if err != nil {
			o.metrics.ScoringFailuresTotal.Inc()
			o.logger.Warn("scoring failed, variant left unscored",
				zap.String("variant", id), zap.Error(err))
			o.setStatus(id, types.StatusIdle)
			continue
		}
		o.replaceItem(id, func(it types.VariantWithMeta) types.VariantWithMeta {
			it.Score = score
			it.Status = types.StatusIdle
			return it
		})
	}
}

func (o *Orchestrator) scoreVariant(ctx context.Context, v types.Variant) (*types.VariantScore, error) {
	return completeAndDecode(ctx, o, schema.OpScore, prompt.Score(o.brief, v), schema.DecodeScore)
}

// Score rescores a single variant by identity.
func (o *Orchestrator) Score(ctx context.Context, variantID string) error {
	item, ok := o.item(variantID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	o.setStatus(variantID, types.StatusScoring)
	score, err := o.scoreVariant(ctx, item.Variant)
	if err != nil {
		o.setStatus(variantID, types.StatusIdle)
		return err
	}
	o.replaceItem(variantID, func(it types.VariantWithMeta) types.VariantWithMeta {
		it.Score = score
		it.Status = types.StatusIdle
		return it
	})
	return nil
}

// Remix rewrites one variant with the given intent. The remixed copy replaces
// the original in place under a fresh identity; any prior score is stale and
// dropped.
func (o *Orchestrator) Remix(ctx context.Context, variantID string, intent types.RemixIntent) error {
	item, ok := o.item(variantID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	o.setStatus(variantID, types.StatusRemixing)
	v, err := completeAndDecode(ctx, o, schema.OpRemix, prompt.Remix(o.brief, item.Variant, intent), func(raw string) (types.Variant, error) {
		return schema.DecodeVariant(schema.OpRemix, raw, item.Variant.Platform)
	})
	if err != nil {
		o.setStatus(variantID, types.StatusIdle)
		return err
	}
	v.ID = uuid.NewString()
	o.replaceItem(variantID, func(it types.VariantWithMeta) types.VariantWithMeta {
		return types.VariantWithMeta{
			Variant:  v,
			Warnings: insight.AllWarnings(v),
			Status:   types.StatusIdle,
		}
	})
	return nil
}

// ApplyTip rewrites one variant following a metric tip. The rewritten copy
// always replaces the original in place, keeping its identity; the stale
// score is dropped.
func (o *Orchestrator) ApplyTip(ctx context.Context, variantID string, metric types.Metric, tip string) error {
	item, ok := o.item(variantID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	o.setStatus(variantID, types.StatusApplyingTip)
	v, err := completeAndDecode(ctx, o, schema.OpApplyTip, prompt.ApplyTip(o.brief, item.Variant, metric, tip), func(raw string) (types.Variant, error) {
		return schema.DecodeVariant(schema.OpApplyTip, raw, item.Variant.Platform)
	})
	if err != nil {
		o.setStatus(variantID, types.StatusIdle)
		return err
	}
	v.ID = variantID
	o.replaceItem(variantID, func(it types.VariantWithMeta) types.VariantWithMeta {
		return types.VariantWithMeta{
			Variant:  v,
			Warnings: insight.AllWarnings(v),
			Status:   types.StatusIdle,
		}
	})
	return nil
}

// RemixTip asks for a fresh coaching tip for one metric of a scored variant.
// Only the tip text changes; the variant and its numbers stay as they are.
func (o *Orchestrator) RemixTip(ctx context.Context, variantID string, metric types.Metric) (string, error) {
	item, ok := o.item(variantID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	if item.Score == nil {
		return "", fmt.Errorf("variant %q has no score to remix a tip for", variantID)
	}
	current := item.Score.Metrics[metric].Tip
	o.setStatus(variantID, types.StatusRemixingTip)
	tip, err := completeAndDecode(ctx, o, schema.OpRemixTip, prompt.RemixTip(item.Variant, metric, current), schema.DecodeTip)
	if err != nil {
		o.setStatus(variantID, types.StatusIdle)
		return "", err
	}
	o.replaceItem(variantID, func(it types.VariantWithMeta) types.VariantWithMeta {
		score := *it.Score
		ms := make(map[types.Metric]types.MetricScore, len(score.Metrics))
		for k, v := range score.Metrics {
			ms[k] = v
		}
		m := ms[metric]
		m.Tip = tip
		ms[metric] = m
		score.Metrics = ms
		it.Score = &score
		it.Status = types.StatusIdle
		return it
	})
	return tip, nil
}

// item finds one collection member by identity.
func (o *Orchestrator) item(variantID string) (types.VariantWithMeta, bool) {
	for _, it := range o.items {
		if it.Variant.ID == variantID {
			return it, true
		}
	}
	return types.VariantWithMeta{}, false
}

// replaceItem swaps one member of the collection via whole-slice replacement.
// Slices handed out by Items before the call are never mutated.
func (o *Orchestrator) replaceItem(variantID string, fn func(types.VariantWithMeta) types.VariantWithMeta) {
	next := make([]types.VariantWithMeta, len(o.items))
	for i, it := range o.items {
		if it.Variant.ID == variantID {
			next[i] = fn(it)
		} else {
			next[i] = it
		}
	}
	o.items = next
}

func (o *Orchestrator) setStatus(variantID string, status types.ItemStatus) {
	o.replaceItem(variantID, func(it types.VariantWithMeta) types.VariantWithMeta {
		it.Status = status
		return it
	})
}

func (o *Orchestrator) persistHistory() {
	if o.storage != nil {
		o.storage.SaveHistory(o.cache.Entries())
	}
}
