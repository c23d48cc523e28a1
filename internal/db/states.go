package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"inspection-service/internal/models"
)

func (d *DB) FindState(ctx context.Context, scope, name string) (*models.State, error) {
	var s models.State
	err := d.Pool.QueryRow(ctx,
		`SELECT scope, name FROM states WHERE scope = $1 AND name = $2`,
		scope, name).Scan(&s.Scope, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("state %s/%s: %w", scope, name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find state %s/%s: %w", scope, name, err)
	}
	return &s, nil
}
