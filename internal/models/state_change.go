package models

import (
	"time"

	"github.com/google/uuid"
)

// StateChange is one interval during which a seismograph held a state,
// optionally carrying the failure reasons that caused it.
type StateChange struct {
	ID        uuid.UUID       `json:"id"`
	State     *State          `json:"state"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
	Reasons   []FailureReason `json:"reasons,omitempty"`
}

// IsCurrent reports whether the interval is still open.
func (c *StateChange) IsCurrent() bool {
	return c.EndedAt == nil
}

// Finish closes the interval. The end time is set once and never cleared.
func (c *StateChange) Finish() {
	if c.EndedAt != nil {
		return
	}
	now := time.Now()
	c.EndedAt = &now
}

// AddReason attaches a failure reason to the interval.
func (c *StateChange) AddReason(r FailureReason) {
	c.Reasons = append(c.Reasons, r)
}
