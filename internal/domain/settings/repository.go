package settings

import "context"

// SettingsRepository persists the settings record as key/value pairs.
type SettingsRepository interface {
	// GetAll returns every stored pair. Missing keys are not an error.
	GetAll(ctx context.Context) (map[string]string, error)

	// SaveAll upserts the given pairs atomically.
	SaveAll(ctx context.Context, values map[string]string) error
}
