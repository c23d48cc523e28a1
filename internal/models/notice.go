package models

import (
	"time"

	"github.com/google/uuid"
)

// ClosureNotice is the fan-out message built once per successful closure and
// passed unchanged to every notification channel. It is transient, never
// persisted.
type ClosureNotice struct {
	ID            uuid.UUID `json:"id"`
	SeismographID int       `json:"seismograph_id"`
	StateName     string    `json:"state_name"`
	ClosedAt      time.Time `json:"closed_at"`
	Reasons       []string  `json:"reasons"`
	Comments      []string  `json:"comments"`
	Recipients    []string  `json:"recipients"`
}
