package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adforge/internal/brief"
	"adforge/internal/types"
)

var generateFlags struct {
	company        string
	product        string
	audience       string
	usp            string
	differentiator string
	objections     string
	tone           string
	persona        string
	phrases        string
	funnelStage    string
	actionGoal     string
	temperature    string
	coreOffer      string
	platform       string
	format         string
	asset          string
	vibe           string
	locale         string
	region         string
	count          int
	model          string
	reformat       bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate scored ad variants from a campaign brief",
	Long: `Runs the full generation flow: builds the brief, asks the model for
variants, validates them against platform limits and policy patterns, and
scores each variant on seven quality metrics.

Identical briefs are served from the history cache without a model call.

Example:
  adforge generate --product "Acme CI" --audience "engineering leads" \
    --usp "Cuts review time in half" --platform meta --count 4`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.company, "company", "", "Company or brand name")
	f.StringVar(&generateFlags.product, "product", "", "Product or service")
	f.StringVar(&generateFlags.audience, "audience", "", "Target audience")
	f.StringVar(&generateFlags.usp, "usp", "", "Unique selling proposition")
	f.StringVar(&generateFlags.differentiator, "differentiator", "", "What sets it apart")
	f.StringVar(&generateFlags.objections, "objections", "", "Common objections to counter")
	f.StringVar(&generateFlags.tone, "tone", "", "Tone of voice")
	f.StringVar(&generateFlags.persona, "persona", "", "Buyer persona")
	f.StringVar(&generateFlags.phrases, "phrases", "", "Mandatory phrases")
	f.StringVar(&generateFlags.funnelStage, "funnel-stage", "awareness", "Funnel stage: awareness, consideration, conversion, retention")
	f.StringVar(&generateFlags.actionGoal, "action-goal", "click", "Action goal: click, lead, trial, demo, purchase")
	f.StringVar(&generateFlags.temperature, "audience-temperature", "cold", "Audience temperature: cold, warm, existing")
	f.StringVar(&generateFlags.coreOffer, "offer", "", "Core offer")
	f.StringVar(&generateFlags.platform, "platform", "", "Platform: meta, google, linkedin, x, instagram")
	f.StringVar(&generateFlags.format, "format", "text", "Ad format: text, image, video, carousel")
	f.StringVar(&generateFlags.asset, "asset", "", "Description of the visual asset")
	f.StringVar(&generateFlags.vibe, "vibe", "", "Creative vibe")
	f.StringVar(&generateFlags.locale, "locale", "", "Locale, e.g. en-US")
	f.StringVar(&generateFlags.region, "region", "", "Region or market")
	f.IntVar(&generateFlags.count, "count", 0, "Variant count (clamped to 3..6)")
	f.StringVar(&generateFlags.model, "model", "", "Model identifier")
	f.BoolVar(&generateFlags.reformat, "reformat", false, "If the model reply is not parsable JSON, resubmit once with a strict-JSON instruction")
}

func buildBrief(defaults brief.CampaignBrief) brief.CampaignBrief {
	b := defaults
	b.Company = generateFlags.company
	b.Product = generateFlags.product
	b.Audience = generateFlags.audience
	b.USP = generateFlags.usp
	b.Differentiator = generateFlags.differentiator
	b.Objections = generateFlags.objections
	b.Tone = generateFlags.tone
	b.Persona = generateFlags.persona
	b.MandatoryPhrases = generateFlags.phrases
	if generateFlags.funnelStage != "" {
		b.FunnelStage = brief.FunnelStage(generateFlags.funnelStage)
	}
	if generateFlags.actionGoal != "" {
		b.ActionGoal = brief.ActionGoal(generateFlags.actionGoal)
	}
	if generateFlags.temperature != "" {
		b.Temperature = brief.AudienceTemperature(generateFlags.temperature)
	}
	b.CoreOffer = generateFlags.coreOffer
	if generateFlags.platform != "" {
		b.Platform = types.Platform(generateFlags.platform)
	}
	if generateFlags.format != "" {
		b.AdFormat = types.AdFormat(generateFlags.format)
	}
	b.AssetDescription = generateFlags.asset
	if generateFlags.vibe != "" {
		b.Vibe = generateFlags.vibe
	}
	if generateFlags.locale != "" {
		b.Locale = generateFlags.locale
	}
	b.Region = generateFlags.region
	if generateFlags.count != 0 {
		b.VariantCount = generateFlags.count
	}
	if generateFlags.model != "" {
		b.Model = generateFlags.model
	}
	return b
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b := buildBrief(brief.Default(a.orchestrator.Settings()))
	if err := a.orchestrator.Generate(cmd.Context(), b); err != nil {
		if !generateFlags.reformat || !a.orchestrator.CanReformat() {
			return err
		}
		fmt.Println("Model reply was not parsable JSON; resubmitting with a strict-JSON instruction.")
		if err := a.orchestrator.Reformat(cmd.Context()); err != nil {
			return err
		}
	}

	printItems(a.orchestrator.Items())

	if advice := a.orchestrator.Advice(); len(advice) > 0 {
		fmt.Println("Campaign advice:")
		for _, line := range advice {
			fmt.Println("  -", line)
		}
		fmt.Println()
	}
	if hint := a.orchestrator.CTADiversity(); hint != "" {
		fmt.Println(hint)
	}
	return nil
}

func printItems(items []types.VariantWithMeta) {
	for i, it := range items {
		v := it.Variant
		fmt.Printf("Variant %d  [%s]  id=%s\n", i+1, v.Platform, v.ID)
		for _, h := range v.Headlines {
			fmt.Println("  Headline:", h)
		}
		fmt.Println("  Primary: ", v.PrimaryText)
		if v.Description != "" {
			fmt.Println("  Desc:    ", v.Description)
		}
		fmt.Println("  CTA:     ", v.CTA)
		if it.Score != nil {
			fmt.Printf("  Score:    %d/100 - %s\n", it.Score.Total, it.Score.Summary)
			for _, m := range types.Metrics {
				ms := it.Score.Metrics[m]
				fmt.Printf("    %-16s %3d  %s\n", string(m)+":", ms.Score, ms.Tip)
			}
		}
		for _, warning := range it.Warnings {
			fmt.Println("  Warning: ", warning)
		}
		fmt.Println()
	}
}
