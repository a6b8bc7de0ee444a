package infra

import (
	"strings"
)

const (
	EnvDevelopment = "development"

	flagDecisionOs = "DECISION_OS_ENABLED"
	flagAutopilot  = "DECISION_AUTOPILOT_ENABLED"
	flagOcr        = "DECISION_OCR_ENABLED"
	flagDrm        = "DECISION_DRM_ENABLED"
)

// FeatureFlags is the immutable result of resolving the capability flags
// from an environment snapshot. It is built once at process start and passed
// to consumers, business code never reads the environment directly.
type FeatureFlags struct {
	DecisionOs bool
	Autopilot  bool
	Ocr        bool
	Drm        bool
}

// ResolveFeatureFlags resolves the four capability flags from the given
// lookup function (os.LookupEnv in production, a map in tests).
//
// Only the literals "true" and "false" are recognized, case-insensitively
// and with surrounding whitespace tolerated. Any other value, including "1",
// "yes" or an empty string, counts as absent and falls back to the
// environment default: everything off outside development (fail closed), and
// everything on in development except OCR, which depends on a paid external
// API and must always be opted into explicitly.
func ResolveFeatureFlags(env string, lookup func(string) (string, bool)) FeatureFlags {
	dev := env == EnvDevelopment

	return FeatureFlags{
		DecisionOs: resolveFlag(lookup, flagDecisionOs, dev),
		Autopilot:  resolveFlag(lookup, flagAutopilot, dev),
		Ocr:        resolveFlag(lookup, flagOcr, false),
		Drm:        resolveFlag(lookup, flagDrm, dev),
	}
}

func resolveFlag(lookup func(string) (string, bool), name string, defaultValue bool) bool {
	raw, ok := lookup(name)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true
	case "false":
		return false
	}
	return defaultValue
}

// The feature specific accessors AND-gate on the DecisionOs master switch:
// without it, every feature flag reads as disabled regardless of its own
// setting.

func (f FeatureFlags) IsAutopilotEnabled() bool {
	return f.DecisionOs && f.Autopilot
}

func (f FeatureFlags) IsOcrEnabled() bool {
	return f.DecisionOs && f.Ocr
}

func (f FeatureFlags) IsDrmEnabled() bool {
	return f.DecisionOs && f.Drm
}
