// Package session stubs the login boundary: it always reports one fixed
// operator, resolved once at startup. Real authentication is out of scope.
package session

import "inspection-service/internal/models"

type Fixed struct {
	operator *models.Employee
}

// NewFixed pins the logged-in operator. A nil operator makes every closure
// request come back rejected, which is the correct degraded behavior.
func NewFixed(operator *models.Employee) *Fixed {
	return &Fixed{operator: operator}
}

func (f *Fixed) LoggedInEmployee() *models.Employee {
	return f.operator
}
