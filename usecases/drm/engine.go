// Package drm implements the Decision Override Mechanism: the forced
// fallback engine that picks a safe meal when normal decision making stalls.
package drm

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

// Execute selects the fallback meal for a stuck session. The override has
// absolute authority: there is no user confirmation and no randomness. The
// pick is the first eligible meal of the pool, so identical configurations
// always yield the same meal and step sequence.
//
// The decision id is unique per invocation so that later feedback events can
// be correlated with this exact override.
//
// When the pool contains no eligible meal, Execute fails with
// models.ErrRescueUnavailable instead of returning a meal with no steps.
func Execute(sessionId string, cfg models.FallbackConfig, reason models.DrmTriggerReason) (models.DrmOutput, error) {
	meal, ok := selectFallbackMeal(cfg)
	if !ok {
		return models.DrmOutput{}, errors.Wrapf(models.ErrRescueUnavailable,
			"no eligible fallback meal for session %s", sessionId)
	}

	return models.DrmOutput{
		DecisionId:    uuid.NewString(),
		Meal:          meal.Name,
		EstimatedTime: meal.EstimatedTime,
		Headline:      reason.DisplayCopy(),
		Reason:        reason,
		ExecutionPayload: models.ExecutionPayload{
			Steps: meal.Steps,
		},
	}, nil
}

// A meal is eligible when it carries at least one execution step. The
// display cap on steps is a UI concern, the engine does not truncate.
func selectFallbackMeal(cfg models.FallbackConfig) (models.FallbackMeal, bool) {
	for _, meal := range cfg.Meals {
		if len(meal.Steps) > 0 {
			return meal, true
		}
	}
	return models.FallbackMeal{}, false
}
