// Package memdb is an in-memory implementation of the storage collaborators.
// It backs the service when no database DSN is configured and doubles as the
// test fixture. Lookups return deep copies so callers mutate nothing until
// they save.
package memdb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"inspection-service/internal/models"
)

type Store struct {
	mu           sync.RWMutex
	states       []models.State
	reasons      []models.ReasonType
	employees    []*models.Employee
	stations     map[string]*models.Station
	seismographs map[string]*models.Seismograph
	orders       map[int]*models.Order
}

func New() *Store {
	return &Store{
		stations:     make(map[string]*models.Station),
		seismographs: make(map[string]*models.Seismograph),
		orders:       make(map[int]*models.Order),
	}
}

func (m *Store) FindOrderByNumber(ctx context.Context, number int) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[number]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", number, models.ErrNotFound)
	}
	return m.cloneOrder(o), nil
}

func (m *Store) ListAllOrders(ctx context.Context) ([]*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]*models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, m.cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Number < orders[j].Number })
	return orders, nil
}

func (m *Store) SaveOrder(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.Number]; !ok {
		return fmt.Errorf("order %d: %w", o.Number, models.ErrNotFound)
	}
	m.orders[o.Number] = m.cloneOrder(o)
	return nil
}

func (m *Store) FindSeismographByIdentifier(ctx context.Context, identifier string) (*models.Seismograph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seismographs[identifier]
	if !ok {
		return nil, fmt.Errorf("seismograph %s: %w", identifier, models.ErrNotFound)
	}
	return cloneSeismograph(s), nil
}

func (m *Store) SaveSeismograph(ctx context.Context, s *models.Seismograph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seismographs[s.Identifier]; !ok {
		return fmt.Errorf("seismograph %s: %w", s.Identifier, models.ErrNotFound)
	}
	m.seismographs[s.Identifier] = cloneSeismograph(s)
	return nil
}

func (m *Store) FindState(ctx context.Context, scope, name string) (*models.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.states {
		if s.Scope == scope && s.Name == name {
			copy := s
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("state %s/%s: %w", scope, name, models.ErrNotFound)
}

func (m *Store) ListReasonTypes(ctx context.Context) ([]models.ReasonType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reasons := make([]models.ReasonType, len(m.reasons))
	copy(reasons, m.reasons)
	return reasons, nil
}

func (m *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	employees := make([]*models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		employees = append(employees, cloneEmployee(e))
	}
	return employees, nil
}

// RemoveState drops a catalog entry. Test helper for missing-reference-data
// scenarios.
func (m *Store) RemoveState(scope, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.states[:0]
	for _, s := range m.states {
		if s.Scope != scope || s.Name != name {
			kept = append(kept, s)
		}
	}
	m.states = kept
}

// cloneOrder copies an order together with its station and the station's
// seismographs. Caller must hold the lock.
func (m *Store) cloneOrder(o *models.Order) *models.Order {
	out := *o
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		out.CompletedAt = &t
	}
	if o.ClosedAt != nil {
		t := *o.ClosedAt
		out.ClosedAt = &t
	}
	if o.State != nil {
		st := *o.State
		out.State = &st
	}
	if o.Employee != nil {
		out.Employee = cloneEmployee(o.Employee)
	}
	if o.Station != nil {
		station := *o.Station
		station.Seismographs = nil
		for _, sm := range m.seismographs {
			if sm.StationCode == station.Code {
				station.Seismographs = append(station.Seismographs, cloneSeismograph(sm))
			}
		}
		sort.Slice(station.Seismographs, func(i, j int) bool {
			return station.Seismographs[i].Identifier < station.Seismographs[j].Identifier
		})
		out.Station = &station
	}
	return &out
}

func cloneSeismograph(s *models.Seismograph) *models.Seismograph {
	out := *s
	if s.State != nil {
		st := *s.State
		out.State = &st
	}
	out.Changes = nil
	for _, c := range s.Changes {
		change := *c
		if c.State != nil {
			st := *c.State
			change.State = &st
		}
		if c.EndedAt != nil {
			t := *c.EndedAt
			change.EndedAt = &t
		}
		change.Reasons = append([]models.FailureReason(nil), c.Reasons...)
		out.Changes = append(out.Changes, &change)
	}
	return &out
}

func cloneEmployee(e *models.Employee) *models.Employee {
	out := *e
	out.Roles = append([]models.Role(nil), e.Roles...)
	return &out
}
