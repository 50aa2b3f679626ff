package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"adforge/internal/campaign"
	"adforge/internal/completion"
	"adforge/internal/config"
	"adforge/internal/metrics"
	"adforge/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adforge",
	Short: "adforge - LLM-driven ad copy workbench",
	Long: `adforge generates, scores, and remixes ad copy variants from a campaign
brief, using an OpenAI-compatible completion endpoint.

Generation is cached per brief, every variant is scored on seven quality
metrics, and recorded performance can be imported from CSV to correlate
content features with click-through rates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles everything a command needs.
type app struct {
	cfg          *config.Config
	store        *store.Store
	metrics      *metrics.Metrics
	orchestrator *campaign.Orchestrator
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newApp loads configuration, opens the store, and builds the orchestrator.
// The credential comes from config or environment and stays in memory.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	client := completion.NewHTTPClientWithConfig(completion.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     cfg.GetLLMTimeout(),
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})

	m := metrics.New()
	o := campaign.New(client, st, logger, m)
	if cfg.LLM.APIKey != "" {
		o.SetCredential(cfg.LLM.APIKey)
	}

	return &app{cfg: cfg, store: st, metrics: m, orchestrator: o}, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "adforge.yaml", "Path to configuration file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(anglesCmd)
	rootCmd.AddCommand(namingCmd)
	rootCmd.AddCommand(blueprintCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(perfCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(utmCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
