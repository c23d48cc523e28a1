package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"inspection-service/internal/models"
)

func (d *DB) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := d.Pool.Query(ctx, `
        SELECT e.email, e.name, e.surname, e.phone, r.name, r.description
        FROM employees e
        LEFT JOIN employee_roles er ON er.employee_email = e.email
        LEFT JOIN roles r ON r.name = er.role_name
        ORDER BY e.email`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var (
		employees []*models.Employee
		current   *models.Employee
	)
	for rows.Next() {
		var (
			emp       models.Employee
			roleName  pgtype.Text
			roleDescr pgtype.Text
		)
		err := rows.Scan(&emp.Email, &emp.Name, &emp.Surname, &emp.Phone, &roleName, &roleDescr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if current == nil || current.Email != emp.Email {
			copy := emp
			current = &copy
			employees = append(employees, current)
		}
		if roleName.Valid {
			current.Roles = append(current.Roles, models.Role{
				Name:        roleName.String,
				Description: roleDescr.String,
			})
		}
	}
	return employees, rows.Err()
}
