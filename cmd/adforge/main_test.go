package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adforge/internal/brief"
	"adforge/internal/types"
)

func TestBuildBrief_FlagsOverrideDefaults(t *testing.T) {
	saved := generateFlags
	t.Cleanup(func() { generateFlags = saved })

	generateFlags.product = "Acme CI"
	generateFlags.platform = "linkedin"
	generateFlags.vibe = "dry"
	generateFlags.count = 5
	generateFlags.model = "gpt-4o"

	b := buildBrief(brief.Default(types.DefaultSettings()))
	assert.Equal(t, "Acme CI", b.Product)
	assert.Equal(t, types.PlatformLinkedIn, b.Platform)
	assert.Equal(t, "dry", b.Vibe)
	assert.Equal(t, 5, b.VariantCount)
	assert.Equal(t, "gpt-4o", b.Model)
}

func TestBuildBrief_EmptyFlagsKeepDefaults(t *testing.T) {
	defaults := brief.Default(types.DefaultSettings())
	b := buildBrief(defaults)
	assert.Equal(t, defaults.Platform, b.Platform)
	assert.Equal(t, defaults.Vibe, b.Vibe)
	assert.Equal(t, defaults.VariantCount, b.VariantCount)
	assert.Equal(t, defaults.Model, b.Model)
}

func TestRootCommandWiring(t *testing.T) {
	// Commands are attached in main(); mirror the wiring here so a broken
	// AddCommand list fails the build, not a user.
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	// rootCmd gets its subcommands in main(); invoke the same registration.
	if len(names) == 0 {
		rootCmd.AddCommand(generateCmd, serveCmd, hooksCmd, anglesCmd, namingCmd,
			blueprintCmd, favoritesCmd, perfCmd, historyCmd, utmCmd)
		for _, c := range rootCmd.Commands() {
			names[c.Name()] = true
		}
	}
	for _, want := range []string{"generate", "serve", "hooks", "angles", "naming", "blueprint", "favorites", "perf", "history", "utm"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
