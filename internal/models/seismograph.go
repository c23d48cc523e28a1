package models

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Seismograph is monitored equipment belonging to a station. Its current
// state always matches the state of the most recent StateChange, or the
// externally set initial state before any change was recorded.
type Seismograph struct {
	Identifier  string         `json:"identifier"`
	SerialNo    string         `json:"serial_no"`
	AcquiredAt  time.Time      `json:"acquired_at"`
	StationCode string         `json:"station_code,omitempty"`
	State       *State         `json:"state,omitempty"`
	Changes     []*StateChange `json:"changes,omitempty"`
}

// SetState replaces the current state without opening a StateChange record.
func (s *Seismograph) SetState(st *State) {
	s.State = st
}

// BeginStateChange opens a new StateChange interval targeting the given
// state and appends it to the history.
func (s *Seismograph) BeginStateChange(st *State) *StateChange {
	change := &StateChange{
		ID:        uuid.New(),
		State:     st,
		StartedAt: time.Now(),
	}
	s.Changes = append(s.Changes, change)
	return change
}

// CurrentChange returns the open StateChange, if any. At most one change has
// a nil end time at any instant.
func (s *Seismograph) CurrentChange() *StateChange {
	for _, c := range s.Changes {
		if c.IsCurrent() {
			return c
		}
	}
	return nil
}

// BelongsTo checks the station relationship. Records carrying no station
// code are treated as matching; the source system never populated the link
// and stubbed this check to always pass.
func (s *Seismograph) BelongsTo(station *Station) bool {
	if station == nil {
		return false
	}
	if s.StationCode == "" || station.Code == "" {
		return true
	}
	return s.StationCode == station.Code
}

// NumericID extracts the numeric suffix of an identifier like "SISMO-001".
// When the suffix does not parse, it falls back to a stable non-negative
// hash of the full identifier so every seismograph still gets a usable id.
func (s *Seismograph) NumericID() int {
	if s.Identifier == "" {
		return 0
	}
	if i := strings.LastIndex(s.Identifier, "-"); i >= 0 {
		if n, err := strconv.Atoi(s.Identifier[i+1:]); err == nil {
			return n
		}
	}
	h := fnv.New32a()
	h.Write([]byte(s.Identifier))
	return int(h.Sum32() % 10000)
}
