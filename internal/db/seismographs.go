package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"inspection-service/internal/models"
)

func (d *DB) FindSeismographByIdentifier(ctx context.Context, identifier string) (*models.Seismograph, error) {
	query := `
        SELECT sm.identifier, sm.serial_no, sm.acquired_at, sm.station_code, s.scope, s.name
        FROM seismographs sm
        JOIN states s ON s.id = sm.state_id
        WHERE sm.identifier = $1`
	sm, err := scanSeismograph(d.Pool.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("seismograph %s: %w", identifier, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find seismograph %s: %w", identifier, err)
	}
	return sm, nil
}

// SaveSeismograph writes the current state and any state changes recorded on
// the entity. Already-persisted changes are skipped by their id.
func (d *DB) SaveSeismograph(ctx context.Context, sm *models.Seismograph) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
        UPDATE seismographs
        SET state_id = (SELECT id FROM states WHERE scope = $2 AND name = $3)
        WHERE identifier = $1`,
		sm.Identifier, sm.State.Scope, sm.State.Name)
	if err != nil {
		return fmt.Errorf("failed to save seismograph %s: %w", sm.Identifier, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("seismograph %s: %w", sm.Identifier, models.ErrNotFound)
	}

	for _, change := range sm.Changes {
		_, err := tx.Exec(ctx, `
            INSERT INTO state_changes (id, seismograph_identifier, state_id, started_at, ended_at)
            VALUES ($1, $2, (SELECT id FROM states WHERE scope = $3 AND name = $4), $5, $6)
            ON CONFLICT (id) DO NOTHING`,
			change.ID, sm.Identifier, change.State.Scope, change.State.Name,
			change.StartedAt, change.EndedAt)
		if err != nil {
			return fmt.Errorf("failed to save state change %s: %w", change.ID, err)
		}
		for _, reason := range change.Reasons {
			_, err := tx.Exec(ctx, `
                INSERT INTO failure_reasons (state_change_id, reason_code, comment)
                VALUES ($1, $2, $3)
                ON CONFLICT DO NOTHING`,
				change.ID, reason.Type.Code, reason.Comment)
			if err != nil {
				return fmt.Errorf("failed to save failure reason: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// attachSeismographs loads a station's seismographs with their current
// states.
func (d *DB) attachSeismographs(ctx context.Context, station *models.Station) error {
	rows, err := d.Pool.Query(ctx, `
        SELECT sm.identifier, sm.serial_no, sm.acquired_at, sm.station_code, s.scope, s.name
        FROM seismographs sm
        JOIN states s ON s.id = sm.state_id
        WHERE sm.station_code = $1
        ORDER BY sm.identifier`, station.Code)
	if err != nil {
		return fmt.Errorf("failed to load seismographs for station %s: %w", station.Code, err)
	}
	defer rows.Close()

	for rows.Next() {
		sm, err := scanSeismograph(rows)
		if err != nil {
			return fmt.Errorf("failed to scan seismograph: %w", err)
		}
		station.Seismographs = append(station.Seismographs, sm)
	}
	return rows.Err()
}

func scanSeismograph(row pgx.Row) (*models.Seismograph, error) {
	var (
		sm          models.Seismograph
		stationCode pgtype.Text
		state       models.State
	)
	err := row.Scan(&sm.Identifier, &sm.SerialNo, &sm.AcquiredAt, &stationCode, &state.Scope, &state.Name)
	if err != nil {
		return nil, err
	}
	sm.StationCode = stationCode.String
	sm.State = &state
	return &sm, nil
}
