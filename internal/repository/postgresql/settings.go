package postgresql

import (
	"context"
	"fmt"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetAll implements settings.SettingsRepository.
func (s *settingsRepositoryImpl) GetAll(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// SaveAll implements settings.SettingsRepository.
func (s *settingsRepositoryImpl) SaveAll(ctx context.Context, values map[string]string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	for key, value := range values {
		if _, err := q.Exec(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}
