package insight

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"adforge/internal/types"
)

// minLift is the relative click-through lift (in percent) a content feature
// must show before it is reported.
const minLift = 5.0

// maxInsights caps the number of reported insights, the best-CTR line
// included.
const maxInsights = 4

// Binary content features correlated against click-through rate.
var (
	featNumeral     = regexp.MustCompile(`\d`)
	featSocialProof = regexp.MustCompile(`(?i)\b(\+?\d{2,}|\d+%|reviews?|customers?|users?|cases|testimonials?)\b`)
	featUrgency     = regexp.MustCompile(`(?i)\b(now|today|tomorrow|limited|last|slots?|deadline|ends)\b`)
	featActionVerb  = regexp.MustCompile(`(?i)\b(start|try|download|claim|book|get|order|buy)\b`)
)

type featureCheck struct {
	key   string
	label string
	check func(types.Variant) bool
}

func headAndBody(v types.Variant) string {
	return strings.Join(append(append([]string{}, v.Headlines...), v.PrimaryText), " ")
}

var featureChecks = []featureCheck{
	{"numeral", "a numeral with a concrete result", func(v types.Variant) bool {
		return featNumeral.MatchString(headAndBody(v))
	}},
	{"socialProof", "social proof", func(v types.Variant) bool {
		return featSocialProof.MatchString(headAndBody(v) + " " + v.Description)
	}},
	{"urgency", "urgency language", func(v types.Variant) bool {
		return featUrgency.MatchString(headAndBody(v))
	}},
	{"actionVerb", "strong CTA verbs", func(v types.Variant) bool {
		return featActionVerb.MatchString(strings.Join([]string{v.PrimaryText, v.Description, v.CTA}, " "))
	}},
}

type perfEntry struct {
	variant types.Variant
	perf    types.PerformanceMetrics
}

// PerformanceInsights correlates binary content features with recorded
// click-through rates. It needs at least two variants with any recorded
// metric; for each feature, both the has- and lacks-partition must contain
// at least one member with a recorded CTR before a lift is computed.
// Features with lift >= 5% are reported, highest lift first, capped at four
// insights, with the single best absolute-CTR variant surfaced first.
func PerformanceInsights(items []types.VariantWithMeta, performance map[string]types.PerformanceMetrics) []string {
	var entries []perfEntry
	for _, item := range items {
		perf, ok := performance[item.Variant.ID]
		if !ok || !perf.HasAny() {
			continue
		}
		entries = append(entries, perfEntry{variant: item.Variant, perf: perf})
	}
	if len(entries) < 2 {
		return nil
	}

	type liftInsight struct {
		lift float64
		text string
	}
	var lifts []liftInsight

	for _, feat := range featureChecks {
		var with, without []float64
		for _, e := range entries {
			if e.perf.CTR == nil {
				continue
			}
			if feat.check(e.variant) {
				with = append(with, *e.perf.CTR)
			} else {
				without = append(without, *e.perf.CTR)
			}
		}
		if len(with) == 0 || len(without) == 0 {
			continue
		}
		avgWith := mean(with)
		avgWithout := mean(without)
		if avgWith <= 0 || avgWithout <= 0 {
			continue
		}
		lift := (avgWith - avgWithout) / avgWithout * 100
		if lift < minLift {
			continue
		}
		lifts = append(lifts, liftInsight{
			lift: lift,
			text: fmt.Sprintf("Variants with %s see ~%.1f%% higher CTR (avg %.2f%% vs %.2f%%).", feat.label, lift, avgWith, avgWithout),
		})
	}

	sort.SliceStable(lifts, func(i, j int) bool { return lifts[i].lift > lifts[j].lift })

	var insights []string
	if top, ok := bestCTR(entries); ok {
		hook := ""
		if len(top.variant.Headlines) > 0 {
			hook = top.variant.Headlines[0]
		}
		insights = append(insights, fmt.Sprintf("Best CTR: %.2f%% - hook: %q.", *top.perf.CTR, hook))
	}
	for _, li := range lifts {
		if len(insights) >= maxInsights {
			break
		}
		insights = append(insights, li.text)
	}
	return insights
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func bestCTR(entries []perfEntry) (perfEntry, bool) {
	var best perfEntry
	found := false
	for _, e := range entries {
		if e.perf.CTR == nil {
			continue
		}
		if !found || *e.perf.CTR > *best.perf.CTR {
			best = e
			found = true
		}
	}
	return best, found
}
