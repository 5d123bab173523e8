package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type backupRepositoryImpl struct {
	db *database.DB
}

func NewBackupRepository(db *database.DB) backup.BackupRepository {
	return &backupRepositoryImpl{db: db}
}

// AllAttendance implements backup.BackupRepository.
func (b *backupRepositoryImpl) AllAttendance(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, b.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance a ORDER BY a.date ASC, a.employee_id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance for backup: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Attendance, error) {
		return scanAttendance(row)
	})
}
