package models

// DrmTriggerReason is the closed set of conditions under which the decision
// flow hands control to the fallback engine.
type DrmTriggerReason string

const (
	DrmTriggerRejectionThreshold DrmTriggerReason = "rejection_threshold"
	DrmTriggerTimeThreshold      DrmTriggerReason = "time_threshold"
	DrmTriggerExplicitDone       DrmTriggerReason = "explicit_done"
	DrmTriggerNoValidMeal        DrmTriggerReason = "no_valid_meal"
)

// DrmTriggerReasonFrom parses a wire value into the closed enum. Every other
// value is rejected so that downstream code can rely on exhaustive switches.
func DrmTriggerReasonFrom(s string) (DrmTriggerReason, error) {
	switch reason := DrmTriggerReason(s); reason {
	case DrmTriggerRejectionThreshold,
		DrmTriggerTimeThreshold,
		DrmTriggerExplicitDone,
		DrmTriggerNoValidMeal:
		return reason, nil
	}
	return "", ErrUnknownTriggerReason
}

// DisplayCopy maps every trigger reason to the headline shown on the rescue
// screen. The set is closed at parse time, so the final return is only
// reachable for a zero value.
func (r DrmTriggerReason) DisplayCopy() string {
	switch r {
	case DrmTriggerRejectionThreshold:
		return "Enough scrolling. This one works."
	case DrmTriggerTimeThreshold:
		return "Time's up. Here's dinner."
	case DrmTriggerExplicitDone:
		return "Say no more. We've got you."
	case DrmTriggerNoValidMeal:
		return "Nothing fit, so we picked a safe bet."
	}
	return ""
}

// FallbackMeal is one entry of the safe meal pool. A meal with no steps is
// not eligible for selection.
type FallbackMeal struct {
	Name          string
	EstimatedTime string
	Steps         []string
}

// FallbackConfig describes the pool of safe fallback meals. The pool order
// is the selection order: the engine picks the first eligible meal, so a
// given config always produces the same choice.
type FallbackConfig struct {
	Meals []FallbackMeal
}

// DefaultFallbackConfig is the built-in pool, constructed once per process.
// Meals are pantry staples that need no shopping trip.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		Meals: []FallbackMeal{
			{
				Name:          "Pasta with butter and parmesan",
				EstimatedTime: "15 min",
				Steps: []string{
					"Boil a pot of salted water",
					"Cook the pasta until just tender",
					"Drain, keeping a splash of the water",
					"Toss with butter, parmesan and the reserved water",
				},
			},
			{
				Name:          "Scrambled eggs on toast",
				EstimatedTime: "10 min",
				Steps: []string{
					"Whisk eggs with a pinch of salt",
					"Toast the bread",
					"Scramble the eggs over low heat",
					"Pile the eggs on the toast",
				},
			},
			{
				Name:          "Grilled cheese and tomato soup",
				EstimatedTime: "12 min",
				Steps: []string{
					"Heat the soup in a small pot",
					"Butter two slices of bread",
					"Grill the sandwich until golden on both sides",
					"Serve with the soup for dipping",
				},
			},
		},
	}
}

type ExecutionPayload struct {
	Steps []string
}

// DrmOutput is the engine's result. Steps is never empty: the engine fails
// with ErrRescueUnavailable instead of returning a degenerate output.
type DrmOutput struct {
	DecisionId       string
	Meal             string
	EstimatedTime    string
	Headline         string
	Reason           DrmTriggerReason
	ExecutionPayload ExecutionPayload
}
