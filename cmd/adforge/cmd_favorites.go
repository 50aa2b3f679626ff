package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adforge/internal/export"
	"adforge/internal/importer"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List or export saved favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		favorites := a.orchestrator.Favorites()
		if len(favorites) == 0 {
			fmt.Println("No favorites saved yet.")
			return nil
		}
		for _, f := range favorites {
			fmt.Printf("%s  [%s/%s]  %s\n", f.ID, f.Platform, f.Vibe, strings.Join(f.Variant.Headlines, " | "))
		}
		return nil
	},
}

var exportFormat string

var favoritesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export favorites as JSON or CSV to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		favorites := a.orchestrator.Favorites()
		switch exportFormat {
		case "csv":
			return export.FavoritesCSV(os.Stdout, favorites)
		case "json":
			return export.FavoritesJSON(os.Stdout, favorites)
		default:
			return fmt.Errorf("format must be json or csv, got %q", exportFormat)
		}
	},
}

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Work with recorded ad performance",
}

var perfImportCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import recorded performance from CSV",
	Long: `Reads a CSV with a required variantId column and any of ctr, cvr, cpa,
roas. Rows without an identity are skipped; malformed numbers leave that
metric unset. Imported metrics persist across regenerations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := importer.ParsePerformanceCSV(f)
		if err != nil {
			return err
		}
		a.orchestrator.AttachPerformance(data)
		fmt.Printf("Imported performance for %d variants.\n", len(data))

		if insights := a.orchestrator.Insights(); len(insights) > 0 {
			fmt.Println("\nInsights:")
			for _, line := range insights {
				fmt.Println("  -", line)
			}
		}
		return nil
	},
}

var perfInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show performance insights for the live collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		insights := a.orchestrator.Insights()
		if len(insights) == 0 {
			fmt.Println("Not enough recorded performance yet; import CTRs for at least two variants.")
			return nil
		}
		for _, line := range insights {
			fmt.Println("-", line)
		}

		checklist := a.orchestrator.Checklist()
		fmt.Printf("\nCoverage: %d hooks, %d with social proof, %d with urgency, %d CTA variants, %d angle signals\n",
			checklist.Hooks, checklist.SocialProof, checklist.Urgency, checklist.CTAVariants, checklist.AngleSignals)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List cached generations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entries := a.orchestrator.History()
		if len(entries) == 0 {
			fmt.Println("History is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %s/%s  %d variants\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.Brief.Product, e.Brief.Platform, e.Brief.Vibe, len(e.Result.Variants))
		}
		return nil
	},
}

func init() {
	favoritesExportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	favoritesCmd.AddCommand(favoritesExportCmd)
	perfCmd.AddCommand(perfImportCmd)
	perfCmd.AddCommand(perfInsightsCmd)
}
