package models

import (
	"encoding/json"
	"time"
)

// UserAction is what the user eventually did with a decision.
type UserAction string

const (
	UserActionApproved  UserAction = "approved"
	UserActionRejected  UserAction = "rejected"
	UserActionAbandoned UserAction = "abandoned"
)

func UserActionFrom(s string) (UserAction, error) {
	switch action := UserAction(s); action {
	case UserActionApproved, UserActionRejected, UserActionAbandoned:
		return action, nil
	}
	return "", ErrUnknownUserAction
}

// DecisionEvent is one row of the append-only decision audit log. Rows are
// created when a decision is made and mutated exactly once when the user
// acts on it; they are never deleted.
type DecisionEvent struct {
	Id              string
	SessionId       string
	HouseholdKey    string
	Source          DecisionSource
	DecisionPayload json.RawMessage
	UserAction      *UserAction
	DecidedAt       time.Time
	ActionedAt      *time.Time
}

// DecisionSource distinguishes decisions made by the primary flow from
// forced fallback decisions.
type DecisionSource string

const (
	DecisionSourcePrimary DecisionSource = "primary"
	DecisionSourceRescue  DecisionSource = "rescue"
)

// DecisionContext is the input of the decision endpoint.
type DecisionContext struct {
	SessionId      string
	HouseholdKey   string
	RejectedCount  int
	ElapsedSeconds int
	ExplicitDone   bool
	Candidates     []string
}

// Decision is the primary flow's choice for a context.
type Decision struct {
	DecisionId string
	Meal       string
	Source     DecisionSource
}
