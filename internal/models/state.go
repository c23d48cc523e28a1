package models

import "errors"

// Catalog state scopes.
const (
	ScopeOrder       = "Order"
	ScopeSeismograph = "Seismograph"
)

// Catalog state names.
const (
	StatePending      = "Pending"
	StateCompleted    = "Completed"
	StateClosed       = "Closed"
	StateOperational  = "Operational"
	StateOutOfService = "OutOfService"
	StateInRepair     = "InRepair"
)

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("object not found")

// State is a catalog entry scoping a state name to one entity kind.
type State struct {
	Scope string `json:"scope"`
	Name  string `json:"name"`
}

func (s *State) IsOrderScope() bool       { return s != nil && s.Scope == ScopeOrder }
func (s *State) IsSeismographScope() bool { return s != nil && s.Scope == ScopeSeismograph }
func (s *State) IsCompleted() bool        { return s != nil && s.Name == StateCompleted }
func (s *State) IsClosed() bool           { return s != nil && s.Name == StateClosed }
func (s *State) IsOutOfService() bool     { return s != nil && s.Name == StateOutOfService }
func (s *State) IsInRepair() bool         { return s != nil && s.Name == StateInRepair }
