package closure

import (
	"context"

	"inspection-service/internal/models"
)

// Repository collaborators consumed by the orchestrator. Lookups return
// models.ErrNotFound (possibly wrapped) when nothing matches; any other
// error is a persistence fault and propagates unmodified.

type OrderRepository interface {
	FindOrderByNumber(ctx context.Context, number int) (*models.Order, error)
	ListAllOrders(ctx context.Context) ([]*models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error
}

type SeismographRepository interface {
	FindSeismographByIdentifier(ctx context.Context, identifier string) (*models.Seismograph, error)
	SaveSeismograph(ctx context.Context, s *models.Seismograph) error
}

type StateRepository interface {
	FindState(ctx context.Context, scope, name string) (*models.State, error)
}

type ReasonTypeRepository interface {
	ListReasonTypes(ctx context.Context) ([]models.ReasonType, error)
}

type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
}

// Storage aggregates the five collaborators; both the Postgres and the
// in-memory store satisfy it.
type Storage interface {
	OrderRepository
	SeismographRepository
	StateRepository
	ReasonTypeRepository
	EmployeeRepository
}

// Session resolves the operator behind the current request. The shipped
// implementation is a stub returning one fixed employee.
type Session interface {
	LoggedInEmployee() *models.Employee
}

// Notifier triggers the fan-out after a committed closure.
type Notifier interface {
	Notify(notice models.ClosureNotice)
}
