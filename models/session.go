package models

import "time"

// SessionOutcome is the terminal state of a decision session.
// Transitions: pending -> approved | abandoned | rescued.
type SessionOutcome string

const (
	SessionPending   SessionOutcome = "pending"
	SessionApproved  SessionOutcome = "approved"
	SessionAbandoned SessionOutcome = "abandoned"
	SessionRescued   SessionOutcome = "rescued"
)

type Session struct {
	Id           string
	HouseholdKey string
	StartedAt    time.Time
	EndedAt      *time.Time
	Outcome      SessionOutcome
}

const (
	// DefaultSessionTtl is the inactivity window after which a pending
	// session is considered abandoned.
	DefaultSessionTtl = 30 * time.Minute

	// SessionPruneBatchSize bounds lock contention of one prune run.
	SessionPruneBatchSize = 100
)
