package db

import (
	"context"
	"fmt"

	"inspection-service/internal/models"
)

func (d *DB) ListReasonTypes(ctx context.Context) ([]models.ReasonType, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT code, description FROM reason_types ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reason types: %w", err)
	}
	defer rows.Close()

	var reasons []models.ReasonType
	for rows.Next() {
		var rt models.ReasonType
		if err := rows.Scan(&rt.Code, &rt.Description); err != nil {
			return nil, fmt.Errorf("failed to scan reason type: %w", err)
		}
		reasons = append(reasons, rt)
	}
	return reasons, rows.Err()
}
