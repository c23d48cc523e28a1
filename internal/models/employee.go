package models

import "fmt"

// RoleRepairResponsible marks employees who receive closure emails.
const RoleRepairResponsible = "ResponsibleForRepair"

// Role names a responsibility an employee holds.
type Role struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Employee is identified by email address.
type Employee struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone,omitempty"`
	Roles   []Role `json:"roles,omitempty"`
}

// IsRepairResponsible reports whether the employee holds the
// repair-responsible role.
func (e *Employee) IsRepairResponsible() bool {
	for _, r := range e.Roles {
		if r.Name == RoleRepairResponsible {
			return true
		}
	}
	return false
}

// FullName is used in log lines and email salutations.
func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.Name, e.Surname)
}
