package postgresql

import (
	"context"
	"fmt"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type syncRunRepositoryImpl struct {
	db *database.DB
}

func NewSyncRunRepository(db *database.DB) attendance.SyncRunRepository {
	return &syncRunRepositoryImpl{db: db}
}

// Create implements attendance.SyncRunRepository.
func (s *syncRunRepositoryImpl) Create(ctx context.Context, run attendance.SyncRun) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO sync_runs (id, started_at, device, status)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := q.Exec(ctx, query, run.ID, run.StartedAt, run.Device, run.Status); err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// Finish implements attendance.SyncRunRepository.
func (s *syncRunRepositoryImpl) Finish(ctx context.Context, run attendance.SyncRun) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE sync_runs SET
			finished_at = $2, fetched = $3, applied = $4, duplicates = $5,
			dropped = $6, unregistered = $7, invalid = $8, status = $9, error = $10
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query,
		run.ID, run.FinishedAt, run.Fetched, run.Applied, run.Duplicates,
		run.Dropped, run.Unregistered, run.Invalid, run.Status, run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to finish sync run %s: %w", run.ID, err)
	}
	return nil
}

// ListRecent implements attendance.SyncRunRepository.
func (s *syncRunRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]attendance.SyncRun, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, started_at, finished_at, device, fetched, applied, duplicates,
			dropped, unregistered, invalid, status, error
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	var runs []attendance.SyncRun
	for rows.Next() {
		var r attendance.SyncRun
		err := rows.Scan(
			&r.ID, &r.StartedAt, &r.FinishedAt, &r.Device, &r.Fetched, &r.Applied, &r.Duplicates,
			&r.Dropped, &r.Unregistered, &r.Invalid, &r.Status, &r.Error,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
