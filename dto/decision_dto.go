package dto

import "github.com/RogueScr1be/fast-food-sub005/models"

type DecisionBody struct {
	SessionId      string   `json:"sessionId"`
	RejectedCount  int      `json:"rejectedCount"`
	ElapsedSeconds int      `json:"elapsedSeconds"`
	ExplicitDone   bool     `json:"explicitDone"`
	Candidates     []string `json:"candidates"`
}

type DecisionDto struct {
	DecisionId string `json:"decisionId"`
	Meal       string `json:"meal"`
	Source     string `json:"source"`
}

type DecisionResponse struct {
	Decision       DecisionDto `json:"decision"`
	DrmRecommended bool        `json:"drmRecommended"`
}

func AdaptDecisionDto(decision models.Decision) DecisionDto {
	return DecisionDto{
		DecisionId: decision.DecisionId,
		Meal:       decision.Meal,
		Source:     string(decision.Source),
	}
}
