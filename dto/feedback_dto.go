package dto

type FeedbackBody struct {
	DecisionId string `json:"decisionId"`
	Action     string `json:"action"`
}

type FeedbackResponse struct {
	Recorded bool `json:"recorded"`
}
