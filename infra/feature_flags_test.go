package infra

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFromMap(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}

func TestResolveFeatureFlags_ProductionDefaultsAreFailClosed(t *testing.T) {
	flags := ResolveFeatureFlags("production", lookupFromMap(nil))

	assert.False(t, flags.DecisionOs)
	assert.False(t, flags.Autopilot)
	assert.False(t, flags.Ocr)
	assert.False(t, flags.Drm)
}

func TestResolveFeatureFlags_UnknownEnvironmentDefaultsAreFailClosed(t *testing.T) {
	// Anything that is not "development" gets production defaults.
	flags := ResolveFeatureFlags("staging", lookupFromMap(nil))

	assert.False(t, flags.DecisionOs)
	assert.False(t, flags.Autopilot)
	assert.False(t, flags.Ocr)
	assert.False(t, flags.Drm)
}

func TestResolveFeatureFlags_DevelopmentDefaults(t *testing.T) {
	flags := ResolveFeatureFlags(EnvDevelopment, lookupFromMap(nil))

	assert.True(t, flags.DecisionOs)
	assert.True(t, flags.Autopilot)
	assert.True(t, flags.Drm)
	assert.False(t, flags.Ocr, "OCR always defaults to off, even in development")
}

func TestResolveFeatureFlags_Parsing(t *testing.T) {
	tests := []struct {
		value  string
		expect bool
	}{
		{"true", true},
		{"TRUE", true},
		{"  True  ", true},
		{"false", false},
		{"FALSE", false},
		{" false\t", false},
		// Everything else counts as absent and falls back to the
		// development default (true for the master switch).
		{"1", true},
		{"0", true},
		{"yes", true},
		{"no", true},
		{"", true},
		{"enabled", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.value), func(t *testing.T) {
			flags := ResolveFeatureFlags(EnvDevelopment, lookupFromMap(map[string]string{
				"DECISION_OS_ENABLED": tt.value,
			}))
			assert.Equal(t, tt.expect, flags.DecisionOs)
		})
	}
}

func TestResolveFeatureFlags_InvalidValueFallsBackToProductionDefault(t *testing.T) {
	flags := ResolveFeatureFlags("production", lookupFromMap(map[string]string{
		"DECISION_DRM_ENABLED": "yes",
	}))

	assert.False(t, flags.Drm)
}

func TestFeatureFlags_CascadeOnMasterSwitch(t *testing.T) {
	// With the master switch off, every feature accessor reads false no
	// matter how the individual flags are set.
	for _, autopilot := range []bool{true, false} {
		for _, ocr := range []bool{true, false} {
			for _, drm := range []bool{true, false} {
				flags := FeatureFlags{
					DecisionOs: false,
					Autopilot:  autopilot,
					Ocr:        ocr,
					Drm:        drm,
				}
				assert.False(t, flags.IsAutopilotEnabled())
				assert.False(t, flags.IsOcrEnabled())
				assert.False(t, flags.IsDrmEnabled())
			}
		}
	}
}

func TestFeatureFlags_FeaturesAreIndependentUnderMasterSwitch(t *testing.T) {
	flags := FeatureFlags{DecisionOs: true, Autopilot: true, Ocr: false, Drm: true}

	assert.True(t, flags.IsAutopilotEnabled())
	assert.False(t, flags.IsOcrEnabled())
	assert.True(t, flags.IsDrmEnabled())
}

func TestResolveFeatureFlags_ExplicitOptIns(t *testing.T) {
	flags := ResolveFeatureFlags("production", lookupFromMap(map[string]string{
		"DECISION_OS_ENABLED":  "true",
		"DECISION_OCR_ENABLED": "true",
	}))

	assert.True(t, flags.IsOcrEnabled())
	assert.False(t, flags.IsDrmEnabled(), "DRM stays off in production unless set")
}
