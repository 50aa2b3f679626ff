package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adforge/internal/brief"
	"adforge/internal/export"
	"adforge/internal/prompt"
	"adforge/internal/types"
)

// Auxiliary flows reuse the generate flags to build the brief; they need the
// campaign context even though they produce something other than variants.

var hooksCmd = &cobra.Command{
	Use:   "hooks [category]",
	Short: "Generate opening hooks for one hook category",
	Long: `Categories: problem, dream, objection, urgency, curiosity, contrast.

Example:
  adforge hooks problem --product "Acme CI" --audience "engineering leads"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		seedBrief(a)
		hooks, err := a.orchestrator.GenerateHooks(cmd.Context(), prompt.HookCategory(args[0]))
		if err != nil {
			return err
		}
		for _, h := range hooks {
			fmt.Println("-", h)
		}
		return nil
	},
}

var anglesCmd = &cobra.Command{
	Use:   "angles [key]",
	Short: "Expand one messaging angle into hooks and a starter ad",
	Long: `Keys: problemFirst, statusFirst, valueFirst, socialProofFirst,
competitorFirst, fomo, efficiency, priceSensitive, oldVsNew.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		seedBrief(a)
		exp, err := a.orchestrator.ExpandAngle(cmd.Context(), prompt.AngleKey(args[0]))
		if err != nil {
			return err
		}
		fmt.Println("Angle:   ", exp.Angle)
		for _, h := range exp.Hooks {
			fmt.Println("Hook:    ", h)
		}
		if exp.Headline != "" {
			fmt.Println("Headline:", exp.Headline)
		}
		if exp.PrimaryText != "" {
			fmt.Println("Primary: ", exp.PrimaryText)
		}
		return nil
	},
}

var namingCmd = &cobra.Command{
	Use:   "naming",
	Short: "Suggest campaign and ad set naming conventions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		seedBrief(a)
		names, err := a.orchestrator.GenerateNames(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println("-", n)
		}
		return nil
	},
}

var blueprintImport bool

var blueprintCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Generate platform-ready asset packages for the brief",
	Long: `Produces a Meta package (primary texts, headlines, descriptions, plus
retargeting and conversion variants) and a Google RSA package (headlines,
descriptions, callouts, sitelinks).

With --import the blueprint's ready-made variants are folded into the live
collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		seedBrief(a)
		bp, err := a.orchestrator.GenerateBlueprint(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bp); err != nil {
			return err
		}

		if blueprintImport {
			added := a.orchestrator.ImportBlueprint(*bp)
			fmt.Fprintf(os.Stderr, "Imported %d blueprint variants into the collection.\n", len(added))
		}
		return nil
	},
}

var utmFlags struct {
	url      string
	platform string
	campaign string
	content  string
	term     string
}

var utmCmd = &cobra.Command{
	Use:   "utm",
	Short: "Build a UTM-tagged landing page URL",
	Long: `Tags a destination URL with utm_source, utm_medium, and utm_campaign
using per-platform presets for Meta, Google, and LinkedIn.

Example:
  adforge utm --url https://example.com/landing --platform google --campaign summer_sale`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := export.BuildUTMURL(utmFlags.url, types.Platform(utmFlags.platform), utmFlags.campaign, utmFlags.content, utmFlags.term)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{hooksCmd, anglesCmd, namingCmd, blueprintCmd} {
		f := c.Flags()
		f.StringVar(&generateFlags.company, "company", "", "Company or brand name")
		f.StringVar(&generateFlags.product, "product", "", "Product or service")
		f.StringVar(&generateFlags.audience, "audience", "", "Target audience")
		f.StringVar(&generateFlags.usp, "usp", "", "Unique selling proposition")
		f.StringVar(&generateFlags.platform, "platform", "", "Platform: meta, google, linkedin, x, instagram")
		f.StringVar(&generateFlags.vibe, "vibe", "", "Creative vibe")
		f.StringVar(&generateFlags.model, "model", "", "Model identifier")
	}
	blueprintCmd.Flags().BoolVar(&blueprintImport, "import", false, "Fold blueprint variants into the live collection")

	utmCmd.Flags().StringVar(&utmFlags.url, "url", "", "Destination URL (required)")
	utmCmd.Flags().StringVar(&utmFlags.platform, "platform", "meta", "Platform preset: meta, google, linkedin")
	utmCmd.Flags().StringVar(&utmFlags.campaign, "campaign", "", "utm_campaign value")
	utmCmd.Flags().StringVar(&utmFlags.content, "content", "", "utm_content value")
	utmCmd.Flags().StringVar(&utmFlags.term, "term", "", "utm_term value")
}

// seedBrief installs the flag-built brief as the active one so the aux flows
// have their campaign context without running a generation first.
func seedBrief(a *app) {
	a.orchestrator.SeedBrief(buildBrief(brief.Default(a.orchestrator.Settings())))
}
