package memdb

import (
	"fmt"
	"time"

	"inspection-service/internal/models"
)

// Seeded returns a store populated with the reference dataset: the state and
// reason catalogs, three employees, three stations with one operational
// seismograph each, and four orders in different lifecycle stages.
func Seeded() *Store {
	m := New()
	now := time.Now()

	m.states = []models.State{
		{Scope: models.ScopeOrder, Name: models.StatePending},
		{Scope: models.ScopeOrder, Name: models.StateCompleted},
		{Scope: models.ScopeOrder, Name: models.StateClosed},
		{Scope: models.ScopeSeismograph, Name: models.StateOperational},
		{Scope: models.ScopeSeismograph, Name: models.StateOutOfService},
		{Scope: models.ScopeSeismograph, Name: models.StateInRepair},
	}

	m.reasons = []models.ReasonType{
		{Code: "1", Description: "Electrical failure"},
		{Code: "2", Description: "No connectivity"},
		{Code: "3", Description: "Scheduled maintenance"},
	}

	inspector := models.Role{Name: "Inspector", Description: "Performs station inspections"}
	repair := models.Role{Name: models.RoleRepairResponsible, Description: "Coordinates equipment repairs"}

	john := &models.Employee{
		Email: "john.perez@seismic.net", Name: "John", Surname: "Perez",
		Phone: "123456789", Roles: []models.Role{inspector},
	}
	sol := &models.Employee{
		Email: "sol.vega@seismic.net", Name: "Sol", Surname: "Vega",
		Phone: "987654321", Roles: []models.Role{inspector},
	}
	marcos := &models.Employee{
		Email: "marcos.ponce@seismic.net", Name: "Marcos", Surname: "Ponce",
		Phone: "5551234", Roles: []models.Role{repair},
	}
	m.employees = []*models.Employee{john, sol, marcos}

	operational := &models.State{Scope: models.ScopeSeismograph, Name: models.StateOperational}
	for i := 1; i <= 3; i++ {
		station := &models.Station{
			Code:      seqCode("EST", i),
			Name:      seqName("Station", i),
			Latitude:  -34.60 - float64(i)*0.01,
			Longitude: -58.38 - float64(i)*0.01,
		}
		m.stations[station.Code] = station

		sm := &models.Seismograph{
			Identifier:  seqCode("SISMO", i),
			SerialNo:    seqCode("SN", i),
			AcquiredAt:  now.AddDate(-3, i, 0),
			StationCode: station.Code,
			State:       operational,
		}
		m.seismographs[sm.Identifier] = sm
	}

	completed := &models.State{Scope: models.ScopeOrder, Name: models.StateCompleted}
	closed := &models.State{Scope: models.ScopeOrder, Name: models.StateClosed}
	pending := &models.State{Scope: models.ScopeOrder, Name: models.StatePending}

	completedAt := now.Add(-2 * time.Hour)
	closedAt := now.Add(-12 * time.Hour)

	m.orders = map[int]*models.Order{
		// Closable: owned by the default operator, completed.
		1001: {
			Number: 1001, StartedAt: now.Add(-10 * time.Hour), CompletedAt: &completedAt,
			State: completed, Employee: john, Station: m.stations["EST-001"],
		},
		// Not closable: already closed.
		1002: {
			Number: 1002, StartedAt: now.Add(-20 * time.Hour), ClosedAt: &closedAt,
			Observation: "routine wear", State: closed, Employee: john,
			Station: m.stations["EST-002"],
		},
		// Not closable for the default operator: owned by someone else.
		1003: {
			Number: 1003, StartedAt: now.Add(-15 * time.Hour), CompletedAt: &completedAt,
			State: completed, Employee: sol, Station: m.stations["EST-003"],
		},
		// Not closable: still pending.
		1004: {
			Number: 1004, StartedAt: now.Add(-5 * time.Hour),
			State: pending, Employee: john, Station: m.stations["EST-001"],
		},
	}

	return m
}

func seqCode(prefix string, i int) string {
	return fmt.Sprintf("%s-%03d", prefix, i)
}

func seqName(prefix string, i int) string {
	return fmt.Sprintf("%s %d", prefix, i)
}
