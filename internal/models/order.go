package models

import (
	"fmt"
	"strings"
	"time"
)

// Order is one unit of inspection work against a station. It moves
// Pending -> Completed outside this service; the Completed -> Closed
// transition happens only through Close.
type Order struct {
	Number      int        `json:"number"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Observation string     `json:"observation,omitempty"`
	State       *State     `json:"state,omitempty"`
	Employee    *Employee  `json:"employee,omitempty"`
	Station     *Station   `json:"station,omitempty"`
}

// IsCompleted reports whether the order is eligible for closure.
func (o *Order) IsCompleted() bool {
	return o.State.IsCompleted()
}

// OwnedBy compares by employee email, the chosen unique identifier.
func (o *Order) OwnedBy(e *Employee) bool {
	if o.Employee == nil || e == nil {
		return false
	}
	return o.Employee.Email == e.Email
}

// Close records the observation, stamps the closure time and moves the order
// to the closed state. The guard re-checks the closed state so a concurrent
// closure surfaces as a domain error rather than a silent double write.
func (o *Order) Close(observation string, closed *State) error {
	if strings.TrimSpace(observation) == "" {
		return fmt.Errorf("order %d: an observation is required", o.Number)
	}
	if o.State.IsClosed() {
		return fmt.Errorf("order %d is already closed", o.Number)
	}
	now := time.Now()
	o.Observation = observation
	o.ClosedAt = &now
	o.State = closed
	return nil
}
