package dto

import "github.com/RogueScr1be/fast-food-sub005/models"

type DrmBody struct {
	SessionId string `json:"sessionId"`
	Reason    string `json:"reason"`
}

// ExecutionPayloadDto mirrors the on-screen rescue card: the steps are the
// whole contract, a rescue without steps is never emitted.
type ExecutionPayloadDto struct {
	Steps []string `json:"steps"`
}

// DrmOutputDto keeps the snake_case field names the mobile client already
// parses.
type DrmOutputDto struct {
	DecisionId       string              `json:"decision_id"`
	Meal             string              `json:"meal"`
	EstimatedTime    string              `json:"estimated_time"`
	Headline         string              `json:"headline"`
	Reason           string              `json:"reason"`
	ExecutionPayload ExecutionPayloadDto `json:"execution_payload"`
}

type DrmResponse struct {
	DrmActivated bool          `json:"drmActivated"`
	Status       string        `json:"status,omitempty"`
	Decision     *DrmOutputDto `json:"decision,omitempty"`
}

func AdaptDrmOutputDto(output models.DrmOutput) DrmOutputDto {
	return DrmOutputDto{
		DecisionId:    output.DecisionId,
		Meal:          output.Meal,
		EstimatedTime: output.EstimatedTime,
		Headline:      output.Headline,
		Reason:        string(output.Reason),
		ExecutionPayload: ExecutionPayloadDto{
			Steps: output.ExecutionPayload.Steps,
		},
	}
}
