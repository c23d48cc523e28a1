package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"inspection-service/internal/models"
)

const orderColumns = `
        o.number, o.started_at, o.completed_at, o.closed_at, o.observation,
        s.scope, s.name,
        e.email, e.name, e.surname, e.phone,
        st.code, st.name`

const orderFrom = `
        FROM orders o
        JOIN states s ON s.id = o.state_id
        JOIN employees e ON e.email = o.employee_email
        LEFT JOIN stations st ON st.code = o.station_code`

func (d *DB) FindOrderByNumber(ctx context.Context, number int) (*models.Order, error) {
	query := `SELECT` + orderColumns + orderFrom + ` WHERE o.number = $1`
	order, err := scanOrder(d.Pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", number, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find order %d: %w", number, err)
	}
	if order.Station != nil {
		if err := d.attachSeismographs(ctx, order.Station); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (d *DB) ListAllOrders(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT` + orderColumns + orderFrom + ` ORDER BY o.number`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (d *DB) SaveOrder(ctx context.Context, o *models.Order) error {
	query := `
        UPDATE orders
        SET observation = $2, closed_at = $3,
            state_id = (SELECT id FROM states WHERE scope = $4 AND name = $5)
        WHERE number = $1`
	result, err := d.Pool.Exec(ctx, query,
		o.Number, o.Observation, o.ClosedAt, o.State.Scope, o.State.Name)
	if err != nil {
		return fmt.Errorf("failed to save order %d: %w", o.Number, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", o.Number, models.ErrNotFound)
	}
	return nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		o                    models.Order
		completedAt          pgtype.Timestamptz
		closedAt             pgtype.Timestamptz
		observation          pgtype.Text
		state                models.State
		emp                  models.Employee
		stationCode, station pgtype.Text
	)
	err := row.Scan(
		&o.Number, &o.StartedAt, &completedAt, &closedAt, &observation,
		&state.Scope, &state.Name,
		&emp.Email, &emp.Name, &emp.Surname, &emp.Phone,
		&stationCode, &station,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		o.CompletedAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		o.ClosedAt = &t
	}
	o.Observation = observation.String
	o.State = &state
	o.Employee = &emp
	if stationCode.Valid {
		o.Station = &models.Station{Code: stationCode.String, Name: station.String}
	}
	return &o, nil
}
